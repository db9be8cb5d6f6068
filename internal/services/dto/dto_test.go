package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/services/dto"
	"github.com/maninivas13/farmasthi/internal/validator"
)

func validationErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	vErr, ok := err.(*validator.ValidationError)
	require.True(t, ok, "expected *validator.ValidationError, got %T", err)
	return vErr.Errors
}

func TestSubmitQueryRequest_MinimumLength(t *testing.T) {
	t.Parallel()
	v := validator.New()

	short := dto.SubmitQueryRequest{QueryText: "my crops?"} // 9 chars
	errs := validationErrors(t, v.Validate(&short))
	assert.Contains(t, errs, "query_text")

	ok := dto.SubmitQueryRequest{QueryText: "my crops??"} // 10 chars
	assert.NoError(t, v.Validate(&ok))
}

func TestSubmitQueryRequest_EnumFields(t *testing.T) {
	t.Parallel()
	v := validator.New()

	req := dto.SubmitQueryRequest{
		QueryText: "Whitefly infestation on my cotton crop",
		Category:  models.QueryCategory("astrology"),
	}
	errs := validationErrors(t, v.Validate(&req))
	assert.Contains(t, errs, "category")

	req.Category = models.QueryCategoryPest
	req.Urgency = models.QueryUrgencyUrgent
	assert.NoError(t, v.Validate(&req))
}

func TestReplyRequest_MinimumLength(t *testing.T) {
	t.Parallel()
	v := validator.New()

	short := dto.ReplyRequest{ReplyText: "use pesticide now"} // 17 chars
	errs := validationErrors(t, v.Validate(&short))
	assert.Contains(t, errs, "reply_text")

	ok := dto.ReplyRequest{ReplyText: "Use a neem-based spray twice a week."}
	assert.NoError(t, v.Validate(&ok))
}

func TestRegisterRequest_PhoneRule(t *testing.T) {
	t.Parallel()
	v := validator.New()

	req := dto.RegisterRequest{
		Name:     "Ravi Kumar",
		Phone:    "98765",
		Password: "secret123",
		Role:     models.UserRoleFarmer,
	}
	errs := validationErrors(t, v.Validate(&req))
	assert.Contains(t, errs, "phone")

	req.Phone = "9876543210"
	assert.NoError(t, v.Validate(&req))

	req.Phone = "98765432101" // 11 digits
	errs = validationErrors(t, v.Validate(&req))
	assert.Contains(t, errs, "phone")
}

func TestRegisterRequest_RoleRestriction(t *testing.T) {
	t.Parallel()
	v := validator.New()

	// Admin accounts are seeded, never self-registered.
	req := dto.RegisterRequest{
		Name:     "Ravi Kumar",
		Phone:    "9876543210",
		Password: "secret123",
		Role:     models.UserRoleAdmin,
	}
	errs := validationErrors(t, v.Validate(&req))
	assert.Contains(t, errs, "role")
}

func TestChatRequest_Language(t *testing.T) {
	t.Parallel()
	v := validator.New()

	req := dto.ChatRequest{Message: "What is the weather today?", Language: "fr"}
	errs := validationErrors(t, v.Validate(&req))
	assert.Contains(t, errs, "language")

	req.Language = "hi"
	assert.NoError(t, v.Validate(&req))
}
