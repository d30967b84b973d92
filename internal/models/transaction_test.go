package models_test

import (
	"time"

	"github.com/financegenie/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestTransactionTypeValidation() {
	tests := []struct {
		transactionType models.TransactionType
		err             error
	}{
		{models.TypeIncome, nil},
		{models.TypeExpense, nil},
		{"transfer", models.ErrTransactionTypeInvalid},
		{"", models.ErrTransactionTypeInvalid},
	}

	for _, tt := range tests {
		transaction := models.Transaction{
			UserID: uuid.New(),
			Name:   "Lunch",
			Type:   tt.transactionType,
			Amount: decimal.NewFromFloat(10),
		}

		err := models.DB.Create(&transaction).Error
		if tt.err == nil {
			assert.NoError(suite.T(), err, "type %q", tt.transactionType)
		} else {
			assert.ErrorIs(suite.T(), err, tt.err, "type %q", tt.transactionType)
		}
	}
}

func (suite *TestSuiteStandard) TestTransactionCategoryDefaultsToOther() {
	transaction := suite.createTestTransaction(models.Transaction{UserID: uuid.New()})

	var reloaded models.Transaction
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", transaction.ID).Error)

	assert.Equal(suite.T(), models.CategoryOther, reloaded.Category)
}

func (suite *TestSuiteStandard) TestTransactionCategoryValidation() {
	transaction := models.Transaction{
		UserID:   uuid.New(),
		Name:     "Lunch",
		Type:     models.TypeExpense,
		Category: "Gambling",
		Amount:   decimal.NewFromFloat(10),
	}

	err := models.DB.Create(&transaction).Error
	assert.ErrorIs(suite.T(), err, models.ErrTransactionCategoryInvalid)
}

func (suite *TestSuiteStandard) TestTransactionNegativeAmount() {
	transaction := models.Transaction{
		UserID: uuid.New(),
		Name:   "Lunch",
		Type:   models.TypeExpense,
		Amount: decimal.NewFromFloat(-10),
	}

	err := models.DB.Create(&transaction).Error
	assert.ErrorIs(suite.T(), err, models.ErrAmountNegative)
}

func (suite *TestSuiteStandard) TestTransactionDateDefaultsToNow() {
	transaction := suite.createTestTransaction(models.Transaction{UserID: uuid.New()})

	assert.WithinDuration(suite.T(), time.Now(), transaction.Date, time.Minute)
}

func (suite *TestSuiteStandard) TestTransactionDateUTC() {
	berlin, err := time.LoadLocation("Europe/Berlin")
	suite.Require().NoError(err)

	transaction := suite.createTestTransaction(models.Transaction{
		UserID: uuid.New(),
		Date:   time.Date(2024, 5, 10, 12, 0, 0, 0, berlin),
	})

	var reloaded models.Transaction
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", transaction.ID).Error)

	assert.Equal(suite.T(), time.UTC, reloaded.Date.Location())
	assert.True(suite.T(), reloaded.Date.Equal(transaction.Date))
}

func (suite *TestSuiteStandard) TestTransactionTrimWhitespace() {
	transaction := suite.createTestTransaction(models.Transaction{
		UserID: uuid.New(),
		Name:   "  Lunch \t",
	})

	assert.Equal(suite.T(), "Lunch", transaction.Name)
}
