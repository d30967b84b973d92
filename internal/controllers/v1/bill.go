package v1

import (
	"net/http"
	"time"

	"github.com/financegenie/backend/internal/email"
	"github.com/financegenie/backend/internal/httputil"
	"github.com/financegenie/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RegisterBillRoutes registers the routes for bills with the
// RouterGroup that is passed.
func RegisterBillRoutes(r *gin.RouterGroup, emailService *email.Service) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetBills)
	r.POST("", CreateBill(emailService))

	r.OPTIONS("/:id", httputil.OptionsPatch)
	r.PATCH("/:id", UpdateBill)
}

// BillEditable defines all values that can be set on creation.
type BillEditable struct {
	Name              string                   `json:"name" binding:"required" example:"Electricity"`
	Amount            decimal.Decimal          `json:"amount" example:"120.5" minimum:"0"`
	Status            models.BillStatus        `json:"status" example:"pending" default:"pending"`
	DueDate           time.Time                `json:"dueDate" binding:"required" example:"2024-06-15T00:00:00Z"`
	IsRecurring       bool                     `json:"isRecurring" example:"true"`
	RecurringInterval models.RecurringInterval `json:"recurringInterval" example:"monthly" default:"none"`
	SendEmail         bool                     `json:"sendEmail" example:"true"` // Request a creation confirmation email
}

// model returns the database resource for the API representation of the editable fields
func (editable BillEditable) model(session Session) models.Bill {
	return models.Bill{
		UserID:            session.UserID,
		Name:              editable.Name,
		Amount:            editable.Amount,
		Status:            editable.Status,
		DueDate:           editable.DueDate,
		IsRecurring:       editable.IsRecurring,
		RecurringInterval: editable.RecurringInterval,
	}
}

// BillStatusEditable defines the values that can be changed on an
// existing bill.
type BillStatusEditable struct {
	Status models.BillStatus `json:"status" binding:"required" example:"paid"`
}

type BillResponse struct {
	Data  *models.Bill `json:"data"`
	Error *string      `json:"error"`
}

type BillListResponse struct {
	Data  []models.Bill `json:"data"`
	Error *string       `json:"error"`
}

// @Summary		Get bills
// @Description	Returns the bills of the logged in user, soonest due first. Guests get an empty list.
// @Tags			Bills
// @Produce		json
// @Success		200	{object}	BillListResponse
// @Failure		500	{object}	BillListResponse
// @Router			/v1/bills [get]
func GetBills(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusOK, BillListResponse{Data: []models.Bill{}})
		return
	}

	var bills []models.Bill
	err := models.DB.
		Where("user_id = ?", session.UserID).
		Order("due_date ASC").
		Find(&bills).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BillListResponse{Data: bills})
}

// @Summary		Create bill
// @Description	Creates a new bill for the logged in user, optionally sending a confirmation email
// @Tags			Bills
// @Accept			json
// @Produce		json
// @Success		201		{object}	BillResponse
// @Failure		400		{object}	BillResponse
// @Failure		401		{object}	BillResponse
// @Failure		500		{object}	BillResponse
// @Param			bill	body		BillEditable	true	"Bill"
// @Router			/v1/bills [post]
func CreateBill(emailService *email.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := currentSession(c)
		if !ok {
			e := errNotAuthenticated.Error()
			c.JSON(http.StatusUnauthorized, BillResponse{Error: &e})
			return
		}

		var editable BillEditable
		err := httputil.BindData(c, &editable)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, BillResponse{Error: &e})
			return
		}

		bill := editable.model(session)
		err = models.DB.Create(&bill).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BillResponse{Error: &e})
			return
		}

		// The confirmation email is best-effort: the bill is created
		// whether or not the email goes out.
		if editable.SendEmail {
			sendBillCreatedEmail(emailService, &bill)
		}

		c.JSON(http.StatusCreated, BillResponse{Data: &bill})
	}
}

// sendBillCreatedEmail dispatches the creation confirmation and latches
// the tracking fields when the send succeeded.
func sendBillCreatedEmail(emailService *email.Service, bill *models.Bill) {
	var user models.User
	err := models.DB.First(&user, "id = ?", bill.UserID).Error
	if err != nil {
		log.Error().Err(err).Str("bill", bill.ID.String()).Msg("could not load user for bill confirmation email")
		return
	}

	if user.Email == "" || !user.EmailNotifications {
		return
	}

	sent := emailService.SendBillCreated(user.Email, email.BillData{
		Name:              bill.Name,
		Amount:            bill.Amount,
		DueDate:           bill.DueDate,
		Status:            bill.Status,
		IsRecurring:       bill.IsRecurring,
		RecurringInterval: bill.RecurringInterval,
	})
	if !sent {
		return
	}

	now := time.Now().UTC()
	err = models.DB.Model(bill).
		Select("EmailSent", "LastEmailSent").
		Updates(models.Bill{EmailSent: true, LastEmailSent: &now}).Error
	if err != nil {
		log.Error().Err(err).Str("bill", bill.ID.String()).Msg("could not update bill email tracking fields")
	}
}

// @Summary		Update bill
// @Description	Updates the status of a bill of the logged in user
// @Tags			Bills
// @Accept			json
// @Produce		json
// @Success		200		{object}	BillResponse
// @Failure		400		{object}	BillResponse
// @Failure		401		{object}	BillResponse
// @Failure		404		{object}	BillResponse
// @Failure		500		{object}	BillResponse
// @Param			id		path		string				true	"ID formatted as string"
// @Param			bill	body		BillStatusEditable	true	"Bill"
// @Router			/v1/bills/{id} [patch]
func UpdateBill(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		e := errNotAuthenticated.Error()
		c.JSON(http.StatusUnauthorized, BillResponse{Error: &e})
		return
	}

	var editable BillStatusEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BillResponse{Error: &e})
		return
	}

	// Scoping the lookup to the session's user makes someone else's
	// bill indistinguishable from a missing one.
	var bill models.Bill
	err = models.DB.First(&bill, "id = ? AND user_id = ?", c.Param("id"), session.UserID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillResponse{Error: &e})
		return
	}

	bill.Status = editable.Status
	err = models.DB.Model(&bill).Select("Status").Updates(&bill).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BillResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BillResponse{Data: &bill})
}
