package models

// ApprovalBlock là một khối nội dung cần duyệt trên post (brief, copy).
// Text và cờ approved độc lập: bỏ duyệt không xóa nội dung,
// chỉ xóa dấu vết duyệt (approvedAt/approvedBy).
type ApprovalBlock struct {
	Text       string   `json:"text" bson:"text"`
	Approved   bool     `json:"approved" bson:"approved"`
	ApprovedAt FlexTime `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	ApprovedBy string   `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	UpdatedAt  FlexTime `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	UpdatedBy  string   `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
}

// LinkApprovalBlock là khối duyệt cho link thiết kế (pieceLink):
// giống ApprovalBlock nhưng nội dung là URL thay vì text
type LinkApprovalBlock struct {
	URL        string   `json:"url" bson:"url"`
	Approved   bool     `json:"approved" bson:"approved"`
	ApprovedAt FlexTime `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	ApprovedBy string   `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	UpdatedAt  FlexTime `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	UpdatedBy  string   `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
}

// Tên các khối duyệt trên post, dùng làm discriminator trong API toggle approval
const (
	ApprovalBlockBrief     = "brief"
	ApprovalBlockCopyOut   = "copyOut"
	ApprovalBlockPieceLink = "pieceLink"
)

// IsValidApprovalBlock kiểm tra tên khối duyệt hợp lệ
func IsValidApprovalBlock(name string) bool {
	switch name {
	case ApprovalBlockBrief, ApprovalBlockCopyOut, ApprovalBlockPieceLink:
		return true
	}
	return false
}
