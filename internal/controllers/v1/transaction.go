package v1

import (
	"net/http"
	"time"

	"github.com/financegenie/backend/internal/httputil"
	"github.com/financegenie/backend/internal/models"
	"github.com/financegenie/backend/internal/reports"
	"github.com/financegenie/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetTransactions)
	r.POST("", CreateTransaction)
}

// TransactionEditable defines all values that can be set on creation.
type TransactionEditable struct {
	Name     string                 `json:"name" binding:"required" example:"Lunch"`
	Type     models.TransactionType `json:"type" binding:"required" example:"expense"`
	Category models.Category        `json:"category" example:"Food" default:"Other"` // Defaults to Other
	Amount   decimal.Decimal        `json:"amount" example:"14.03" minimum:"0"`      // The amount of the transaction
	Date     time.Time              `json:"date" example:"2024-05-10T00:00:00Z"`     // Date of the financial event. Must not be in the future
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model(session Session) models.Transaction {
	return models.Transaction{
		UserID:   session.UserID,
		Name:     editable.Name,
		Type:     editable.Type,
		Category: editable.Category,
		Amount:   editable.Amount,
		Date:     editable.Date,
	}
}

// TransactionQueryFilter narrows the transaction list.
type TransactionQueryFilter struct {
	Q      string `form:"q"`                      // Case-insensitive substring match on the name
	Date   string `form:"date"`                   // Exact calendar day of the transaction, formatted YYYY-MM-DD
	SortBy string `form:"sortBy" default:"date"`  // Field to sort by
	Order  string `form:"order" enums:"asc,desc"` // Sort direction, defaults to desc
}

func (filter TransactionQueryFilter) filter() (reports.TransactionFilter, error) {
	var day types.Day
	if filter.Date != "" {
		parsed, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return reports.TransactionFilter{}, errTransactionDateInvalid
		}

		day = types.DayOf(parsed)
	}

	return reports.TransactionFilter{
		Query:  filter.Q,
		Date:   day,
		SortBy: filter.SortBy,
		Order:  filter.Order,
	}, nil
}

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`
	Error *string             `json:"error"`
}

type TransactionListResponse struct {
	Data  []models.Transaction `json:"data"`
	Stats reports.Stats        `json:"stats"`
	Error *string              `json:"error"`
}

// @Summary		Get transactions
// @Description	Returns the transactions of the logged in user with their aggregated totals. Guests get an empty list.
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			q		query	string	false	"Case-insensitive substring match on the name"
// @Param			date	query	string	false	"Exact calendar day of the transaction, YYYY-MM-DD"
// @Param			sortBy	query	string	false	"Field to sort by: date, amount, name or createdAt. Defaults to date."
// @Param			order	query	string	false	"Sort direction, asc or desc. Defaults to desc."
func GetTransactions(c *gin.Context) {
	var queryFilter TransactionQueryFilter
	if err := c.Bind(&queryFilter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
		return
	}

	filter, err := queryFilter.filter()
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
		return
	}

	session, ok := currentSession(c)
	if !ok {
		// Anonymous guest view: no data, zero stats.
		c.JSON(http.StatusOK, TransactionListResponse{
			Data:  []models.Transaction{},
			Stats: reports.Summarize(nil),
		})
		return
	}

	var transactions []models.Transaction
	err = models.DB.
		Scopes(filter.Scope).
		Where("user_id = ?", session.UserID).
		Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data:  transactions,
		Stats: reports.Summarize(transactions),
	})
}

// @Summary		Create transaction
// @Description	Creates a new transaction for the logged in user
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		401			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		e := errNotAuthenticated.Error()
		c.JSON(http.StatusUnauthorized, TransactionResponse{Error: &e})
		return
	}

	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &e})
		return
	}

	// The date must not be in the future. The comparison is
	// calendar-day granular: a transaction later today is fine.
	if !editable.Date.IsZero() && types.DayOf(editable.Date).After(types.Today()) {
		e := errTransactionDateFuture.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{Error: &e})
		return
	}

	transaction := editable.model(session)
	err = models.DB.Create(&transaction).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}
