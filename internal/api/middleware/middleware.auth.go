// Package middleware chứa các middleware xác thực và phân quyền cho Fiber.
package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "content_planner/internal/api/auth/models"
	authsvc "content_planner/internal/api/auth/service"
	"content_planner/internal/common"
	"content_planner/internal/logger"
	"content_planner/internal/utility"
)

// AuthManager quản lý xác thực người dùng qua Firebase ID token
type AuthManager struct {
	UserCRUD *authsvc.UserService
	Cache    *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, err
	}

	return &AuthManager{
		UserCRUD: userService,
		// Cache profile theo firebaseUid để không query DB mỗi request
		Cache: utility.NewCache(5*time.Minute, 10*time.Minute),
	}, nil
}

// InvalidateUser xóa cache profile của một user (gọi sau khi admin đổi quyền)
func (am *AuthManager) InvalidateUser(firebaseUID string) {
	am.Cache.Delete("user_profile:" + firebaseUID)
}

// resolveUser verify Firebase ID token và trả về profile tương ứng (tạo mới nếu chưa có)
func (am *AuthManager) resolveUser(c fiber.Ctx, idToken string) (*models.User, error) {
	token, err := utility.VerifyIDToken(c.Context(), idToken)
	if err != nil {
		return nil, common.ErrTokenInvalid
	}

	cacheKey := "user_profile:" + token.UID
	if cached, found := am.Cache.Get(cacheKey); found {
		if user, ok := cached.(*models.User); ok {
			return user, nil
		}
	}

	user, err := am.UserCRUD.EnsureProfileByFirebaseUID(c.Context(), token.UID)
	if err != nil {
		return nil, err
	}

	am.Cache.Set(cacheKey, user)
	return user, nil
}

// AuthMiddleware middleware xác thực cho Fiber.
// Token là Firebase ID token, gửi qua header Authorization: Bearer <token>.
// Sau khi xác thực, profile user được lưu vào Locals (user, user_id, firebase_uid).
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		authManager := GetAuthManager()

		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		user, err := authManager.resolveUser(c, parts[1])
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token verification failed")
			HandleErrorResponse(c, err)
			return nil
		}

		// Kiểm tra user có bị block không
		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuth,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("firebase_uid", user.FirebaseUID)
		c.Locals("user", user)

		return c.Next()
	}
}

// GetUserFromContext lấy profile user đã được AuthMiddleware lưu vào Locals.
// Trả về nil nếu route không đi qua AuthMiddleware.
func GetUserFromContext(c fiber.Ctx) *models.User {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return nil
	}
	return user
}

// RequireAdmin chỉ cho phép user có roles.admin đi tiếp.
// Phải đặt sau AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		user := GetUserFromContext(c)
		if user == nil {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}
		if !user.Roles.Admin {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id": user.ID.Hex(),
				"path":    c.Path(),
			}).Warn("❌ [AUTH] Admin role required")
			HandleErrorResponse(c, common.ErrRoleRequired)
			return nil
		}
		return c.Next()
	}
}

// RequireClientAccess kiểm tra user có quyền với client trong request không.
// clientId lấy từ URI params trước, rồi tới query string, rồi filter JSON ({"clientId": ...}).
// Route không mang clientId (danh sách client, profile cá nhân) thì không dùng middleware này.
func RequireClientAccess() fiber.Handler {
	return func(c fiber.Ctx) error {
		user := GetUserFromContext(c)
		if user == nil {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		clientIDStr := extractClientID(c)
		if clientIDStr == "" {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeValidationInput,
				"Thiếu clientId trong request",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		clientID, err := primitive.ObjectIDFromHex(clientIDStr)
		if err != nil {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeValidationFormat,
				"clientId không đúng định dạng MongoDB ObjectID",
				common.StatusBadRequest,
				err,
			))
			return nil
		}

		if !user.CanAccessClient(clientID) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":   user.ID.Hex(),
				"client_id": clientID.Hex(),
				"path":      c.Path(),
			}).Warn("❌ [AUTH] Client access denied")
			HandleErrorResponse(c, common.ErrClientAccess)
			return nil
		}

		c.Locals("client_id", clientID.Hex())
		return c.Next()
	}
}

// extractClientID tìm clientId trong params, query hoặc filter JSON
func extractClientID(c fiber.Ctx) string {
	if id := c.Params("clientId"); id != "" {
		return id
	}
	if id := c.Query("clientId"); id != "" {
		return id
	}
	// Filter JSON dạng {"clientId":"..."} hoặc {"clientId":{"$oid":"..."}}
	if filterStr := c.Query("filter", ""); filterStr != "" {
		if id := utility.ExtractJSONStringField(filterStr, "clientId"); id != "" {
			return id
		}
	}
	// Body JSON của các request ghi (POST/PUT) mang clientId trong payload
	if body := c.Body(); len(body) > 0 {
		return utility.ExtractJSONStringField(string(body), "clientId")
	}
	return ""
}
