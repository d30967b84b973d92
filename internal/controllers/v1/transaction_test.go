package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/financegenie/backend/internal/controllers/v1"
	"github.com/financegenie/backend/internal/models"
	"github.com/financegenie/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestTransaction(headers map[string]string, editable v1.TransactionEditable) models.Transaction {
	if editable.Date.IsZero() {
		editable.Date = time.Now().UTC().Add(-time.Hour)
	}

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/transactions", editable, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return *response.Data
}

func (suite *TestSuiteStandard) TestTransactionsGuestListIsEmpty() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Empty(response.Data)
	suite.Assert().True(response.Stats.Income.IsZero())
	suite.Assert().True(response.Stats.Expense.IsZero())
	suite.Assert().True(response.Stats.Balance.IsZero())
	suite.Assert().Zero(response.Stats.SavingsRate)
}

func (suite *TestSuiteStandard) TestTransactionCreateRequiresLogin() {
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Name:   "Lunch",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromFloat(12.5),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestTransactionCreate() {
	user, headers := suite.signupUser("jane", "jane@example.com")

	transaction := suite.createTestTransaction(headers, v1.TransactionEditable{
		Name:     "Lunch",
		Type:     models.TypeExpense,
		Category: models.CategoryFood,
		Amount:   decimal.NewFromFloat(12.5),
	})

	suite.Assert().Equal("Lunch", transaction.Name)
	suite.Assert().Equal(user.ID, transaction.UserID)
	suite.Assert().True(transaction.Amount.Equal(decimal.NewFromFloat(12.5)))
}

func (suite *TestSuiteStandard) TestTransactionCreateDefaultsCategory() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	transaction := suite.createTestTransaction(headers, v1.TransactionEditable{
		Name:   "Mystery",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(5),
	})

	suite.Assert().Equal(models.CategoryOther, transaction.Category)
}

func (suite *TestSuiteStandard) TestTransactionCreateRejectsFutureDate() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/transactions", v1.TransactionEditable{
		Name:   "Time travel",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(10),
		Date:   time.Now().UTC().Add(48 * time.Hour),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	// Nothing may be stored
	var count int64
	suite.Require().NoError(models.DB.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Zero(count)
}

func (suite *TestSuiteStandard) TestTransactionCreateAllowsToday() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	transaction := suite.createTestTransaction(headers, v1.TransactionEditable{
		Name:   "Coffee",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(3),
		Date:   time.Now().UTC(),
	})

	suite.Assert().Equal("Coffee", transaction.Name)
}

func (suite *TestSuiteStandard) TestTransactionCreateInvalidType() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	recorder := test.Request(suite.T(), http.MethodPost, "/v1/transactions", map[string]any{
		"name":   "Broken",
		"type":   "windfall",
		"amount": "10",
		"date":   time.Now().UTC().Add(-time.Hour),
	}, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionListWithStats() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Name:   "Salary",
		Type:   models.TypeIncome,
		Amount: decimal.NewFromInt(100),
	})
	suite.createTestTransaction(headers, v1.TransactionEditable{
		Name:   "Groceries",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(25),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	suite.Assert().Len(response.Data, 2)
	suite.Assert().True(response.Stats.Income.Equal(decimal.NewFromInt(100)))
	suite.Assert().True(response.Stats.Expense.Equal(decimal.NewFromInt(25)))
	suite.Assert().True(response.Stats.Balance.Equal(decimal.NewFromInt(75)))
	suite.Assert().InDelta(75.0, response.Stats.SavingsRate, 0.01)
}

func (suite *TestSuiteStandard) TestTransactionListIsUserScoped() {
	_, janeHeaders := suite.signupUser("jane", "jane@example.com")
	_, johnHeaders := suite.signupUser("john", "john@example.com")

	suite.createTestTransaction(janeHeaders, v1.TransactionEditable{
		Name:   "Lunch",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(12),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions", "", johnHeaders)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Empty(response.Data)
}

func (suite *TestSuiteStandard) TestTransactionListSearch() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Name:   "Lunch at the corner place",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(12),
	})
	suite.createTestTransaction(headers, v1.TransactionEditable{
		Name:   "Bus ticket",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(3),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions?q=LUNCH", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Lunch at the corner place", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestTransactionListDateFilter() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Name:   "On the day",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(10),
		Date:   time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC),
	})
	suite.createTestTransaction(headers, v1.TransactionEditable{
		Name:   "Day after",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(10),
		Date:   time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions?date=2024-05-10", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("On the day", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestTransactionListSortAmountAsc() {
	_, headers := suite.signupUser("jane", "jane@example.com")

	suite.createTestTransaction(headers, v1.TransactionEditable{
		Name:   "Big",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(100),
	})
	suite.createTestTransaction(headers, v1.TransactionEditable{
		Name:   "Small",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromInt(1),
	})

	recorder := test.Request(suite.T(), http.MethodGet, "/v1/transactions?sortBy=amount&order=asc", "", headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Small", response.Data[0].Name)
	suite.Assert().Equal("Big", response.Data[1].Name)
}
