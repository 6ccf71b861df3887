package plannerhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "content_planner/internal/api/base/handler"
	plannerdto "content_planner/internal/api/planner/dto"
	models "content_planner/internal/api/planner/models"
	plannersvc "content_planner/internal/api/planner/service"
)

// PostHandler xử lý các route post trên lịch
type PostHandler struct {
	basehdl.BaseHandler[models.Post, plannerdto.PostCreateInput, plannerdto.PostUpdateInput]
	PostService *plannersvc.PostService
}

// NewPostHandler tạo mới PostHandler
func NewPostHandler() (*PostHandler, error) {
	postService, err := plannersvc.GetPostService()
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}

	handler := &PostHandler{PostService: postService}
	handler.BaseService = postService.BaseServiceMongoImpl
	return handler, nil
}

// HandleCreate tạo post mới trên lịch
func (h *PostHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := requireActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input plannerdto.PostCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		post, err := h.PostService.CreatePost(c.Context(), &input, actor)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandleUpdate cập nhật từng phần một post
func (h *PostHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := requireActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input plannerdto.PostUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		post, err := h.PostService.UpdateItem(c.Context(), id, &input, actor)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandleFindByMonth trả về các post của một (client, tháng)
func (h *PostHandler) HandleFindByMonth(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		clientID, monthKey, err := parseClientMonthQuery(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		posts, err := h.PostService.FindByClientMonth(c.Context(), clientID, monthKey)
		h.HandleResponse(c, posts, err)
		return nil
	})
}

// HandleDuplicate nhân bản một post
func (h *PostHandler) HandleDuplicate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := requireActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		post, err := h.PostService.Duplicate(c.Context(), id, actor)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandleToggleApproval duyệt / bỏ duyệt một khối trên post
func (h *PostHandler) HandleToggleApproval(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := requireActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input plannerdto.ToggleApprovalInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		post, err := h.PostService.ToggleApproval(c.Context(), id, input.Block, input.Approved, actor)
		h.HandleResponse(c, post, err)
		return nil
	})
}

// HandleComment xếp autosave ghi chú nội bộ của một post.
// Response trả về ngay; lần ghi thật diễn ra sau quiet delay để gộp các lần gõ.
func (h *PostHandler) HandleComment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		actor, err := requireActor(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		id, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input plannerdto.InternalCommentInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.PostService.QueueInternalComment(id, input.Text, actor)
		h.HandleResponse(c, fiber.Map{"queued": true}, nil)
		return nil
	})
}
