package models

import "time"

// Models is the auto-migrate list.
var Models = []interface{}{
	&User{}, &Follow{}, &Like{}, &Collect{}, &Media{},
	&Blog{}, &Forum{}, &ForumComment{}, &ForumReply{},
	&Video{}, &VideoComment{}, &VideoReply{},
	&Feedback{}, &AiHistory{}, &Exercise{},
}

// Target types for the polymorphic like/save/media rows.
const (
	TargetBlog         = "blog"
	TargetForum        = "forum"
	TargetForumComment = "forum_comment"
	TargetForumReply   = "forum_reply"
	TargetVideo        = "video"
	TargetVideoComment = "video_comment"
	TargetVideoReply   = "video_reply"
)

type Model struct {
	Id int64 `gorm:"size:64;primaryKey;autoIncrement" json:"id" db:"id"`
}

type User struct {
	Model
	UserId     int64     `gorm:"size:64;not null;uniqueIndex:idx_user_id" json:"user_id,string" db:"user_id"`
	Username   string    `gorm:"size:64;not null;uniqueIndex:idx_username" json:"username" db:"username"`
	AvatarUrl  string    `gorm:"size:256" json:"avatar_url" db:"avatar_url"`
	FansNums   int64     `gorm:"not null;default:0" json:"fans_nums" db:"fans_nums"`
	FollowNums int64     `gorm:"not null;default:0" json:"follow_nums" db:"follow_nums"`
	CreateTime time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
	UpdateTime time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updateTime" db:"update_time"`
}

type Follow struct {
	Model
	FollowId    int64 `gorm:"size:64;not null;uniqueIndex:idx_follow_id" json:"follow_id,string" db:"follow_id"`
	FollowerId  int64 `gorm:"index:idx_follower_id;size:64;not null" json:"follower_id,string" db:"follower_id"`
	FollowingId int64 `gorm:"index:idx_following_id;size:64;not null" json:"following_id,string" db:"following_id"`
	Val         int8  `gorm:"size:4;not null;default:0" json:"val" db:"val"`
}

// Like is one user's like on one content item. TargetType discriminates
// the content kind so every kind shares the table.
type Like struct {
	Model
	LikeId     int64     `gorm:"size:64;not null;uniqueIndex:idx_like_id" json:"like_id,string" db:"like_id"`
	UserId     int64     `gorm:"index:idx_like_user;size:64;not null" json:"user_id,string" db:"user_id"`
	TargetId   int64     `gorm:"index:idx_like_target;size:64;not null" json:"target_id,string" db:"target_id"`
	TargetType string    `gorm:"index:idx_like_target;size:32;not null" json:"target_type" db:"target_type"`
	CreateTime time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
}

// Collect is one user's save of one content item.
type Collect struct {
	Model
	CollectId  int64     `gorm:"size:64;not null;uniqueIndex:idx_collect_id" json:"collect_id,string" db:"collect_id"`
	UserId     int64     `gorm:"index:idx_collect_user;size:64;not null" json:"user_id,string" db:"user_id"`
	TargetId   int64     `gorm:"index:idx_collect_target;size:64;not null" json:"target_id,string" db:"target_id"`
	TargetType string    `gorm:"index:idx_collect_target;size:32;not null" json:"target_type" db:"target_type"`
	CreateTime time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
}

// Media stores the public URL and deletion handle returned by the upload
// collaborator. The core never uploads or deletes blobs itself.
type Media struct {
	Model
	MediaId      int64  `gorm:"size:64;not null;uniqueIndex:idx_media_id" json:"media_id,string" db:"media_id"`
	TargetId     int64  `gorm:"index:idx_media_target;size:64;not null" json:"target_id,string" db:"target_id"`
	TargetType   string `gorm:"index:idx_media_target;size:32;not null" json:"target_type" db:"target_type"`
	Url          string `gorm:"size:512;not null" json:"url" db:"url"`
	DeleteHandle string `gorm:"size:256" json:"delete_handle" db:"delete_handle"`
	MimeType     string `gorm:"size:64" json:"mime_type" db:"mime_type"`
}

type Blog struct {
	Model
	BlogId      int64     `gorm:"size:64;not null;uniqueIndex:idx_blog_id" json:"id,string" db:"blog_id"`
	AuthorId    int64     `gorm:"index:idx_blog_author;size:64;not null" json:"author_id,string" db:"author_id"`
	Title       string    `gorm:"size:128;not null" json:"title" db:"title"`
	Description string    `gorm:"size:8192;not null" json:"description" db:"description"`
	Topic       string    `gorm:"size:64" json:"topic" db:"topic"`
	Status      int32     `gorm:"size:4;not null" json:"status" db:"status"`
	ViewNums    int64     `gorm:"not null;default:0" json:"view_nums" db:"view_nums"`
	CreateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
	UpdateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updateTime" db:"update_time"`
}

type Forum struct {
	Model
	ForumId     int64     `gorm:"size:64;not null;uniqueIndex:idx_forum_id" json:"id,string" db:"forum_id"`
	AuthorId    int64     `gorm:"index:idx_forum_author;size:64;not null" json:"author_id,string" db:"author_id"`
	Title       string    `gorm:"size:128;not null" json:"title" db:"title"`
	Description string    `gorm:"size:8192;not null" json:"description" db:"description"`
	Topic       string    `gorm:"size:64" json:"topic" db:"topic"`
	Status      int32     `gorm:"size:4;not null" json:"status" db:"status"`
	ViewNums    int64     `gorm:"not null;default:0" json:"view_nums" db:"view_nums"`
	CreateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
	UpdateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updateTime" db:"update_time"`
}

type ForumComment struct {
	Model
	CommentId   int64     `gorm:"size:64;not null;uniqueIndex:idx_forum_comment_id" json:"id,string" db:"comment_id"`
	ForumId     int64     `gorm:"index:idx_forum_comment_forum;size:64;not null" json:"forum_id,string" db:"forum_id"`
	AuthorId    int64     `gorm:"size:64;not null" json:"author_id,string" db:"author_id"`
	Description string    `gorm:"size:4096;not null" json:"description" db:"description"`
	CreateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
	UpdateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updateTime" db:"update_time"`
}

type ForumReply struct {
	Model
	ReplyId     int64     `gorm:"size:64;not null;uniqueIndex:idx_forum_reply_id" json:"id,string" db:"reply_id"`
	CommentId   int64     `gorm:"index:idx_forum_reply_comment;size:64;not null" json:"comment_id,string" db:"comment_id"`
	ForumId     int64     `gorm:"size:64;not null" json:"forum_id,string" db:"forum_id"`
	AuthorId    int64     `gorm:"size:64;not null" json:"author_id,string" db:"author_id"`
	Description string    `gorm:"size:4096;not null" json:"description" db:"description"`
	CreateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
	UpdateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updateTime" db:"update_time"`
}

type Video struct {
	Model
	VideoId     int64     `gorm:"size:64;not null;uniqueIndex:idx_video_id" json:"id,string" db:"video_id"`
	AuthorId    int64     `gorm:"index:idx_video_author;size:64;not null" json:"author_id,string" db:"author_id"`
	Title       string    `gorm:"size:128;not null" json:"title" db:"title"`
	Description string    `gorm:"size:8192" json:"description" db:"description"`
	Topic       string    `gorm:"size:64" json:"topic" db:"topic"`
	Duration    int64     `gorm:"not null;default:0" json:"duration" db:"duration"`
	Status      int32     `gorm:"size:4;not null" json:"status" db:"status"`
	ViewNums    int64     `gorm:"not null;default:0" json:"view_nums" db:"view_nums"`
	CreateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
	UpdateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updateTime" db:"update_time"`
}

type VideoComment struct {
	Model
	CommentId   int64     `gorm:"size:64;not null;uniqueIndex:idx_video_comment_id" json:"id,string" db:"comment_id"`
	VideoId     int64     `gorm:"index:idx_video_comment_video;size:64;not null" json:"video_id,string" db:"video_id"`
	AuthorId    int64     `gorm:"size:64;not null" json:"author_id,string" db:"author_id"`
	Description string    `gorm:"size:4096;not null" json:"description" db:"description"`
	CreateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
	UpdateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updateTime" db:"update_time"`
}

type VideoReply struct {
	Model
	ReplyId     int64     `gorm:"size:64;not null;uniqueIndex:idx_video_reply_id" json:"id,string" db:"reply_id"`
	CommentId   int64     `gorm:"index:idx_video_reply_comment;size:64;not null" json:"comment_id,string" db:"comment_id"`
	VideoId     int64     `gorm:"size:64;not null" json:"video_id,string" db:"video_id"`
	AuthorId    int64     `gorm:"size:64;not null" json:"author_id,string" db:"author_id"`
	Description string    `gorm:"size:4096;not null" json:"description" db:"description"`
	CreateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
	UpdateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updateTime" db:"update_time"`
}

type Feedback struct {
	Model
	FeedbackId  int64     `gorm:"size:64;not null;uniqueIndex:idx_feedback_id" json:"id,string" db:"feedback_id"`
	UserId      int64     `gorm:"index:idx_feedback_user;size:64;not null" json:"user_id,string" db:"user_id"`
	Description string    `gorm:"size:4096;not null" json:"description" db:"description"`
	Contact     string    `gorm:"size:128" json:"contact" db:"contact"`
	CreateTime  time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
}

type AiHistory struct {
	Model
	HistoryId  int64     `gorm:"size:64;not null;uniqueIndex:idx_history_id" json:"id,string" db:"history_id"`
	UserId     int64     `gorm:"index:idx_history_user;size:64;not null" json:"user_id,string" db:"user_id"`
	Question   string    `gorm:"size:4096;not null" json:"question" db:"question"`
	Answer     string    `gorm:"type:text" json:"answer" db:"answer"`
	CreateTime time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
}

type Exercise struct {
	Model
	ExerciseId int64     `gorm:"size:64;not null;uniqueIndex:idx_exercise_id" json:"id,string" db:"exercise_id"`
	AuthorId   int64     `gorm:"size:64;not null" json:"author_id,string" db:"author_id"`
	Title      string    `gorm:"size:128;not null" json:"title" db:"title"`
	Topic      string    `gorm:"size:64" json:"topic" db:"topic"`
	Grade      string    `gorm:"index:idx_exercise_grade;size:32;not null" json:"grade" db:"grade"`
	ViewNums   int64     `gorm:"not null;default:0" json:"view_nums" db:"view_nums"`
	CreateTime time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP" json:"createTime" db:"create_time"`
	UpdateTime time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updateTime" db:"update_time"`
}
