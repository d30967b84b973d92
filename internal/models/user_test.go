package models_test

import (
	"encoding/json"

	"github.com/financegenie/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestUserTrimWhitespace() {
	user := suite.createTestUser(models.User{
		Username: "  jane\t",
		Email:    " Jane@Example.COM ",
	})

	assert.Equal(suite.T(), "jane", user.Username)
	assert.Equal(suite.T(), "jane@example.com", user.Email)
}

func (suite *TestSuiteStandard) TestUserDefaults() {
	user := suite.createTestUser(models.User{})

	var reloaded models.User
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", user.ID).Error)

	assert.True(suite.T(), reloaded.EmailNotifications)
	assert.NotEqual(suite.T(), uuid.Nil, reloaded.ID)
}

// A disabled EmailNotifications flag must round-trip through the
// database unchanged.
func (suite *TestSuiteStandard) TestUserNotificationOptOutPersists() {
	user := models.User{
		Username:           "muted",
		Email:              "muted@example.com",
		EmailNotifications: false,
	}
	suite.Require().NoError(models.DB.Create(&user).Error)

	var reloaded models.User
	suite.Require().NoError(models.DB.First(&reloaded, "id = ?", user.ID).Error)

	assert.False(suite.T(), reloaded.EmailNotifications, "opt-out was not persisted")
}

func (suite *TestSuiteStandard) TestUserUniqueUsername() {
	suite.createTestUser(models.User{Username: "jane", Email: "jane@example.com"})

	second := models.User{Username: "jane", Email: "other@example.com"}
	err := models.DB.Create(&second).Error

	assert.ErrorIs(suite.T(), err, models.ErrUsernameTaken)
}

func (suite *TestSuiteStandard) TestUserUniqueEmail() {
	suite.createTestUser(models.User{Username: "jane", Email: "jane@example.com"})

	second := models.User{Username: "joan", Email: "jane@example.com"}
	err := models.DB.Create(&second).Error

	assert.ErrorIs(suite.T(), err, models.ErrEmailTaken)
}

func (suite *TestSuiteStandard) TestUserPassword() {
	var user models.User
	suite.Require().NoError(user.SetPassword("correct horse battery staple"))

	assert.NotEqual(suite.T(), "correct horse battery staple", user.PasswordHash, "password must not be stored in cleartext")
	assert.True(suite.T(), user.VerifyPassword("correct horse battery staple"))
	assert.False(suite.T(), user.VerifyPassword("Correct horse battery staple"))
	assert.False(suite.T(), user.VerifyPassword(""))
}

func (suite *TestSuiteStandard) TestUserPasswordHashNotSerialized() {
	user := suite.createTestUser(models.User{})
	suite.Require().NoError(user.SetPassword("hunter2"))

	serialized, err := json.Marshal(user)
	suite.Require().NoError(err)

	assert.NotContains(suite.T(), string(serialized), user.PasswordHash)
}
