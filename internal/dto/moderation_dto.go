package dto

type ReportCommentRequest struct {
	PostID      string `json:"postId"`
	CommentID   string `json:"commentId"`
	Reason      string `json:"reason"`
	CommentText string `json:"commentText"`
}
