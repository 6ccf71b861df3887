package plannerhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"content_planner/internal/api/middleware"
	"content_planner/internal/common"
	"content_planner/internal/utility"
)

// parseIDParam đọc và kiểm tra param :id dạng ObjectID
func parseIDParam(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("id")
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(id), nil
}

// requireActor lấy tên hiển thị của user đã xác thực cho attribution (createdBy/updatedBy)
func requireActor(c fiber.Ctx) (string, error) {
	user := middleware.GetUserFromContext(c)
	if user == nil {
		return "", common.ErrTokenMissing
	}
	return user.DisplayName(), nil
}

// parseClientMonthQuery đọc cặp (clientId, monthKey) từ query string.
// clientId đã qua RequireClientAccess nên ưu tiên giá trị trong Locals.
func parseClientMonthQuery(c fiber.Ctx) (primitive.ObjectID, string, error) {
	clientHex, _ := c.Locals("client_id").(string)
	if clientHex == "" {
		clientHex = c.Query("clientId")
	}
	if !primitive.IsValidObjectID(clientHex) {
		return primitive.NilObjectID, "", common.NewError(
			common.ErrCodeValidationFormat,
			"clientId không đúng định dạng MongoDB ObjectID",
			common.StatusBadRequest,
			nil,
		)
	}

	monthKey := c.Query("monthKey")
	if !utility.IsMonthKey(monthKey) {
		return primitive.NilObjectID, "", common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("monthKey '%s' không đúng định dạng YYYY-MM", monthKey),
			common.StatusBadRequest,
			nil,
		)
	}

	return utility.String2ObjectID(clientHex), monthKey, nil
}
