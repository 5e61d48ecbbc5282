package models

// Viewer is the acting identity on a read path. It is always passed
// explicitly; the anonymous sentinel replaces the old hardcoded default
// so no shared cache entry can absorb a viewer-specific value by accident.
type Viewer struct {
	UserId int64
}

var Anonymous = Viewer{}

func (v Viewer) IsAnonymous() bool {
	return v.UserId == 0
}

type ParamPage struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

type ParamMedia struct {
	Url          string `json:"url" binding:"required"`
	DeleteHandle string `json:"delete_handle"`
	MimeType     string `json:"mime_type"`
}

type ParamCreateBlog struct {
	AuthorId    int64        `json:"author_id,string" binding:"required"`
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description" binding:"required"`
	Topic       string       `json:"topic"`
	Media       []ParamMedia `json:"media"`
}

type ParamCreateForum struct {
	AuthorId    int64        `json:"author_id,string" binding:"required"`
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description" binding:"required"`
	Topic       string       `json:"topic"`
	Media       []ParamMedia `json:"media"`
}

type ParamCreateVideo struct {
	AuthorId    int64        `json:"author_id,string" binding:"required"`
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	Topic       string       `json:"topic"`
	Duration    int64        `json:"duration"`
	Media       []ParamMedia `json:"media" binding:"required"`
}

type ParamCreateComment struct {
	AuthorId    int64  `json:"author_id,string" binding:"required"`
	ParentId    int64  `json:"parent_id,string" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type ParamEditContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Topic       string `json:"topic"`
}

type ParamCreateFeedback struct {
	UserId      int64  `json:"user_id,string" binding:"required"`
	Description string `json:"description" binding:"required"`
	Contact     string `json:"contact"`
}

type FollowOperation struct {
	UserId       int64
	TargetUserId int64
	Action       int8
}
