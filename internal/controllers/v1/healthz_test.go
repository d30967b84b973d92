package v1_test

import (
	"net/http"

	"github.com/financegenie/backend/test"
)

func (suite *TestSuiteStandard) TestHealthz() {
	recorder := test.Request(suite.T(), http.MethodGet, "/healthz", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestHealthzDatabaseDown() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "/healthz", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
