package localgw

import (
    "time"

    "gorm.io/datatypes"
    "gorm.io/gorm"
)

// 本地网关的落库模型：与线上后端无关，只为开发服务器、
// 压测与测试提供一份行为等价的权威端。

// User 用户
type User struct {
    ID        string `gorm:"primaryKey;type:varchar(36)"`
    Username  string `gorm:"type:varchar(64);uniqueIndex"`
    AvatarURL string `gorm:"type:varchar(255)"`
    CreatedAt time.Time
}

func (User) TableName() string { return "users" }

// Post 帖子；OriginalPostID 非空表示转发包装
type Post struct {
    ID             string         `gorm:"primaryKey;type:varchar(36)"`
    AuthorID       string         `gorm:"type:varchar(36);index:idx_post_author"`
    Content        string         `gorm:"type:text"`
    Attachments    datatypes.JSON `gorm:"type:json"`
    Visibility     string         `gorm:"type:varchar(16);index:idx_post_visibility"`
    Latitude       float64
    Longitude      float64
    PlaceName      string `gorm:"type:varchar(128)"`
    GroupID        string `gorm:"type:varchar(36)"`
    EventID        string `gorm:"type:varchar(36)"`
    OriginalPostID string `gorm:"type:varchar(36);index:idx_post_original"`
    SharedByID     string `gorm:"type:varchar(36)"`
    SharedToUserID string `gorm:"type:varchar(36)"`
    CreatedAt      time.Time `gorm:"index"`
    UpdatedAt      time.Time
}

func (Post) TableName() string { return "posts" }

// Comment 评论；ParentID 非空为二级回复
type Comment struct {
    ID        string `gorm:"primaryKey;type:varchar(36)"`
    PostID    string `gorm:"type:varchar(36);index:idx_comment_post"`
    ParentID  string `gorm:"type:varchar(36);index:idx_comment_parent"`
    AuthorID  string `gorm:"type:varchar(36)"`
    Text      string `gorm:"type:text"`
    CreatedAt time.Time
}

func (Comment) TableName() string { return "comments" }

// Like 点赞；帖子赞与评论赞共用一张表
// 复合唯一键避免重复点赞
// ux_like_target = (user_id, post_id, comment_id)
type Like struct {
    ID        string `gorm:"primaryKey;type:varchar(36)"`
    UserID    string `gorm:"type:varchar(36);index:ux_like_target,unique;not null"`
    PostID    string `gorm:"type:varchar(36);index:ux_like_target,unique;index:idx_like_post"`
    CommentID string `gorm:"type:varchar(36);index:ux_like_target,unique;index:idx_like_comment"`
    CreatedAt time.Time
}

func (Like) TableName() string { return "likes" }

// SavedPost 收藏
type SavedPost struct {
    ID        string `gorm:"primaryKey;type:varchar(36)"`
    UserID    string `gorm:"type:varchar(36);index:ux_save_pair,unique;not null"`
    PostID    string `gorm:"type:varchar(36);index:ux_save_pair,unique;not null"`
    CreatedAt time.Time
}

func (SavedPost) TableName() string { return "saved_posts" }

// HiddenPost 隐藏
type HiddenPost struct {
    ID        string `gorm:"primaryKey;type:varchar(36)"`
    UserID    string `gorm:"type:varchar(36);index:ux_hide_pair,unique;not null"`
    PostID    string `gorm:"type:varchar(36);index:ux_hide_pair,unique;not null"`
    CreatedAt time.Time
}

func (HiddenPost) TableName() string { return "hidden_posts" }

// Report 举报记录
type Report struct {
    ID           string `gorm:"primaryKey;type:varchar(36)"`
    UserID       string `gorm:"type:varchar(36);index:idx_report_user"`
    PostID       string `gorm:"type:varchar(36);index:idx_report_post"`
    ReportTypeID string `gorm:"type:varchar(36)"`
    Description  string `gorm:"type:text"`
    CreatedAt    time.Time
}

func (Report) TableName() string { return "reports" }

// Friend 好友关系（A 的好友是 B）
// 复合唯一键避免重复
// ux_friend_pair = (user_id, friend_id)
type Friend struct {
    ID        string `gorm:"primaryKey;type:varchar(36)"`
    UserID    string `gorm:"type:varchar(36);index:ux_friend_pair,unique;not null"`
    FriendID  string `gorm:"type:varchar(36);not null;index:ux_friend_pair,unique"`
    CreatedAt time.Time
}

func (Friend) TableName() string { return "friends" }

// Migrate 初始化本地网关表结构
func Migrate(db *gorm.DB) error {
    return db.AutoMigrate(&User{}, &Post{}, &Comment{}, &Like{}, &SavedPost{}, &HiddenPost{}, &Report{}, &Friend{})
}
