package model

// Author 帖子/评论作者引用
type Author struct {
    ID        string `json:"id"`
    Username  string `json:"username"`
    AvatarURL string `json:"avatar_url,omitempty"`
}
