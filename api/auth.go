package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feather-works/feather-backend/model"
)

// ObtainAuthTokenHandler exchanges username/password credentials for the
// user's API token, minting one on first use. Identity provisioning itself
// happens outside this service.
func ObtainAuthTokenHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, ok := bindJSONFields(c)
		if !ok {
			return
		}

		errs := FieldErrors{}
		credentials := map[string]string{}
		for _, field := range []string{"username", "password"} {
			raw, present := fields[field]
			if !present {
				errs.add(field, "This field is required.")
				continue
			}
			value, err := stringField(raw)
			if err != nil || value == nil || *value == "" {
				errs.add(field, "This field may not be blank.")
				continue
			}
			credentials[field] = *value
		}
		if len(errs) > 0 {
			abortValidation(c, errs)
			return
		}

		var user model.User
		err := db.Where("username = ?", credentials["username"]).First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			abortServerError(c, err)
			return
		}
		if err != nil || !user.CheckPassword(credentials["password"]) {
			abortValidation(c, FieldErrors{
				"non_field_errors": {"Unable to log in with provided credentials."},
			})
			return
		}

		var token model.AuthToken
		err = db.Where("user_id = ?", user.Id).First(&token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			token = *model.NewAuthToken(user.Id)
			err = db.Omit(clause.Associations).Create(&token).Error
		}
		if err != nil {
			abortServerError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token.Key})
	}
}
