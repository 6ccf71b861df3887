// Package plannersvc chứa service của các entity lịch nội dung.
package plannersvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	authmodels "content_planner/internal/api/auth/models"
	basesvc "content_planner/internal/api/base/service"
	"content_planner/internal/api/planner/dto"
	"content_planner/internal/api/planner/models"
	"content_planner/internal/common"
	"content_planner/internal/global"
)

// ClientService quản lý client (khách hàng sở hữu lịch nội dung)
type ClientService struct {
	*basesvc.BaseServiceMongoImpl[models.Client]
}

// NewClientService tạo mới ClientService
func NewClientService() (*ClientService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Clients)
	if !exist {
		return nil, fmt.Errorf("failed to get clients collection: %s", global.MongoDB_ColNames.Clients)
	}
	return &ClientService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Client](collection),
	}, nil
}

// axesFromInput chuyển input trục nội dung thành model,
// sinh ID mới cho trục chưa có và gán màu từ bảng màu cho trục thiếu màu
func axesFromInput(inputs []dto.AxisInput) []models.Axis {
	axes := make([]models.Axis, 0, len(inputs))
	for i, in := range inputs {
		axis := models.Axis{ID: in.ID, Name: in.Name, Color: in.Color}
		if axis.ID == "" {
			axis.ID = primitive.NewObjectID().Hex()
		}
		if axis.Color == "" {
			axis.Color = models.AxisColorPalette[i%len(models.AxisColorPalette)]
		}
		axes = append(axes, axis)
	}
	return axes
}

// CreateClient tạo client mới từ input (chỉ admin gọi)
func (s *ClientService) CreateClient(ctx context.Context, input *dto.ClientCreateInput) (*models.Client, error) {
	client := models.Client{
		Name:         input.Name,
		Channels:     input.Channels,
		PaidChannels: input.PaidChannels,
		EnablePaid:   input.EnablePaid,
		Axes:         axesFromInput(input.Axes),
		LogoDataURL:  input.LogoDataURL,
	}

	normalized, result := models.NormalizeClient(client)
	if !result.IsUsable() {
		return nil, common.NewError(common.ErrCodeValidationInput, result.Reason, common.StatusBadRequest, nil)
	}

	created, err := s.InsertOne(ctx, normalized)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSettings cập nhật cấu hình client (chỉ admin gọi).
// Field nil trong input không bị đụng tới; slice rỗng là xóa rỗng thật.
func (s *ClientService) UpdateSettings(ctx context.Context, id primitive.ObjectID, input *dto.ClientUpdateInput) (*models.Client, error) {
	set := make(map[string]interface{})

	if input.Name != nil {
		if *input.Name == "" {
			return nil, common.NewError(common.ErrCodeValidationInput, "Tên client không được rỗng", common.StatusBadRequest, nil)
		}
		set["name"] = *input.Name
	}
	if input.Channels != nil {
		set["channels"] = *input.Channels
	}
	if input.PaidChannels != nil {
		set["paidChannels"] = *input.PaidChannels
	}
	if input.EnablePaid != nil {
		set["enablePaid"] = *input.EnablePaid
	}
	if input.Axes != nil {
		set["axes"] = axesFromInput(*input.Axes)
	}
	if input.LogoDataURL != nil {
		set["logoDataUrl"] = *input.LogoDataURL
	}

	if len(set) == 0 {
		return nil, common.ErrInvalidInput
	}

	updated, err := s.UpdateById(ctx, id, &basesvc.UpdateData{Set: set})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// FindAccessible trả về danh sách client user được phép truy cập, sắp theo tên.
// Admin thấy tất cả; user thường chỉ thấy client trong allowedClients.
func (s *ClientService) FindAccessible(ctx context.Context, user *authmodels.User) ([]models.Client, error) {
	filter := bson.M{}
	if !user.Roles.Admin {
		if len(user.AllowedClients) == 0 {
			return []models.Client{}, nil
		}
		filter["_id"] = bson.M{"$in": user.AllowedClients}
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	clients, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	// Chuẩn hóa trước khi trả về để frontend không phải phòng thủ
	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		normalized, result := models.NormalizeClient(c)
		if result.IsUsable() {
			out = append(out, normalized)
		}
	}
	return out, nil
}

// FindByIdNormalized tìm client theo ID và chuẩn hóa trước khi trả về
func (s *ClientService) FindByIdNormalized(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	client, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	normalized, result := models.NormalizeClient(client)
	if !result.IsUsable() {
		return nil, common.ErrNotFound
	}
	return &normalized, nil
}
