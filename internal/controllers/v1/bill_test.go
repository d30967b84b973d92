package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/financegenie/backend/internal/controllers/v1"
	"github.com/financegenie/backend/internal/models"
	"github.com/financegenie/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestBill(headers map[string]string, editable v1.BillEditable) models.Bill {
	if editable.DueDate.IsZero() {
		editable.DueDate = time.Now().UTC().Add(7 * 24 * time.Hour)
	}

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/bills", editable, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.BillResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return *response.Data
}

func (suite *TestSuiteStandard) TestBillsGuestListIsEmpty() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/bills", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BillListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Empty(response.Data)
}

func (suite *TestSuiteStandard) TestBillCreateRequiresLogin() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/bills", v1.BillEditable{
		Name:    "Electricity",
		Amount:  decimal.NewFromInt(120),
		DueDate: time.Now().UTC().Add(7 * 24 * time.Hour),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestBillCreate() {
	user, headers := suite.signupUser("jane", "jane@example.com")

	bill := suite.createTestBill(headers, v1.BillEditable{
		Name:              "Electricity",
		Amount:            decimal.NewFromInt(120),
		IsRecurring:       true,
		RecurringInterval: models.IntervalMonthly,
	})

	suite.Assert().Equal("Electricity", bill.Name)
	suite.Assert().Equal(user.ID, bill.UserID)
	suite.Assert().Equal(models.BillStatusPending, bill.Status)
	suite.Assert().False(bill.EmailSent)
	suite.Assert().False(bill.ReminderEmailSent)
}

// Bill creation succeeds even when the confirmation email is requested
// but no mail transport is configured.
func (suite *TestSuiteStandard) TestBillCreateWithEmailUnconfigured() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	bill := suite.createTestBill(headers, v1.BillEditable{
		Name:      "Rent",
		Amount:    decimal.NewFromInt(900),
		SendEmail: true,
	})

	// The send was skipped, so the tracking fields stay untouched
	var reloaded models.Bill
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", bill.ID).Error)
	suite.Assert().False(reloaded.EmailSent)
	suite.Assert().Nil(reloaded.LastEmailSent)
}

func (suite *TestSuiteStandard) TestBillCreateInvalidStatus() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/bills", map[string]any{
		"name":    "Broken",
		"amount":  "10",
		"status":  "postponed",
		"dueDate": time.Now().UTC().Add(24 * time.Hour),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBillListSortedByDueDate() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	suite.createTestBill(headers, v1.BillEditable{
		Name:    "Later",
		Amount:  decimal.NewFromInt(10),
		DueDate: time.Now().UTC().Add(14 * 24 * time.Hour),
	})
	suite.createTestBill(headers, v1.BillEditable{
		Name:    "Sooner",
		Amount:  decimal.NewFromInt(10),
		DueDate: time.Now().UTC().Add(2 * 24 * time.Hour),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/bills", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BillListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Sooner", response.Data[0].Name)
	suite.Assert().Equal("Later", response.Data[1].Name)
}

func (suite *TestSuiteStandard) TestBillUpdateStatus() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	bill := suite.createTestBill(headers, v1.BillEditable{
		Name:   "Electricity",
		Amount: decimal.NewFromInt(120),
	})

	recorder := test.Request(suite.T(), http.MethodPatch, "/v1/bills/"+bill.ID.String(), v1.BillStatusEditable{
		Status: models.BillStatusPaid,
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.BillResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Equal(models.BillStatusPaid, response.Data.Status)

	var reloaded models.Bill
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", bill.ID).Error)
	suite.Assert().Equal(models.BillStatusPaid, reloaded.Status)
}

// A bill belonging to another user is indistinguishable from a missing
// one.
func (suite *TestSuiteStandard) TestBillUpdateOtherUsersBill() {
	_, janeHeaders := suite.signupUser("jane", "jane@example.com")
	_, johnHeaders := suite.signupUser("john", "john@example.com")

	bill := suite.createTestBill(janeHeaders, v1.BillEditable{
		Name:   "Electricity",
		Amount: decimal.NewFromInt(120),
	})

	recorder := test.Request(suite.T(), http.MethodPatch, "/v1/bills/"+bill.ID.String(), v1.BillStatusEditable{
		Status: models.BillStatusPaid,
	}, johnHeaders)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBillUpdateRequiresLogin() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	bill := suite.createTestBill(headers, v1.BillEditable{
		Name:   "Electricity",
		Amount: decimal.NewFromInt(120),
	})

	recorder := test.Request(suite.T(), http.MethodPatch, "/v1/bills/"+bill.ID.String(), v1.BillStatusEditable{
		Status: models.BillStatusPaid,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}
