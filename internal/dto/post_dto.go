package dto

type CreatePostRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AuthorName  string   `json:"authorName"`
	AuthorEmail string   `json:"authorEmail"`
	AuthorUID   string   `json:"authorUid"`
	AuthorImage string   `json:"authorImage"`
	Tag         string   `json:"tag"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"imageUrl"`
	IsVisible   *bool    `json:"isVisible"`
}

type AddCommentRequest struct {
	Content     string `json:"content"`
	AuthorName  string `json:"authorName"`
	AuthorImage string `json:"authorImage"`
}

type CreateTagRequest struct {
	Name string `json:"name"`
}

type CreateAnnouncementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AuthorName  string `json:"authorName"`
	AuthorImage string `json:"authorImage"`
}
