package localgw

import (
    "context"
    "encoding/json"
    "errors"
    "strings"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/feedsync/internal/gateway"
    "github.com/d60-Lab/feedsync/internal/pagecache"
)

var (
    ErrPostNotFound    = errors.New("post not found")
    ErrCommentNotFound = errors.New("comment not found")
    ErrUserNotFound    = errors.New("user not found")
    ErrNotAllowed      = errors.New("not allowed")
    ErrEmptyText       = errors.New("text is empty")
    ErrBadScope        = errors.New("share scope must name at most one target")
)

// Service 本地权威端：gorm 落库，行为与引擎对远端的契约一致。
// comments 缓存可为空（测试/压测直连库）。
type Service struct {
    db    *gorm.DB
    cache *pagecache.Cache
}

func NewService(db *gorm.DB, cache *pagecache.Cache) *Service {
    return &Service{db: db, cache: cache}
}

func (s *Service) getPost(ctx context.Context, postID string) (*Post, error) {
    var p Post
    if err := s.db.WithContext(ctx).Where("id = ?", postID).First(&p).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return nil, ErrPostNotFound
        }
        return nil, err
    }
    return &p, nil
}

// resolveTarget 转发包装解析到原帖 ID
func (s *Service) resolveTarget(ctx context.Context, postID string) (string, error) {
    p, err := s.getPost(ctx, postID)
    if err != nil {
        return "", err
    }
    if p.OriginalPostID != "" {
        return p.OriginalPostID, nil
    }
    return p.ID, nil
}

// Like 幂等点赞
func (s *Service) Like(ctx context.Context, viewerID, postID string) error {
    target, err := s.resolveTarget(ctx, postID)
    if err != nil {
        return err
    }
    l := &Like{ID: uuid.New().String(), UserID: viewerID, PostID: target}
    return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error
}

func (s *Service) Unlike(ctx context.Context, viewerID, postID string) error {
    target, err := s.resolveTarget(ctx, postID)
    if err != nil {
        return err
    }
    return s.db.WithContext(ctx).
        Where("user_id = ? AND post_id = ? AND comment_id = ''", viewerID, target).
        Delete(&Like{}).Error
}

func (s *Service) LikeComment(ctx context.Context, viewerID, commentID string) error {
    var c Comment
    if err := s.db.WithContext(ctx).Where("id = ?", commentID).First(&c).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return ErrCommentNotFound
        }
        return err
    }
    l := &Like{ID: uuid.New().String(), UserID: viewerID, CommentID: commentID}
    if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error; err != nil {
        return err
    }
    s.invalidateComments(ctx, c.PostID)
    return nil
}

func (s *Service) UnlikeComment(ctx context.Context, viewerID, commentID string) error {
    var c Comment
    if err := s.db.WithContext(ctx).Where("id = ?", commentID).First(&c).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return ErrCommentNotFound
        }
        return err
    }
    if err := s.db.WithContext(ctx).
        Where("user_id = ? AND comment_id = ?", viewerID, commentID).
        Delete(&Like{}).Error; err != nil {
        return err
    }
    s.invalidateComments(ctx, c.PostID)
    return nil
}

// AddComment 新增一级评论
func (s *Service) AddComment(ctx context.Context, viewerID, postID, text string) error {
    if strings.TrimSpace(text) == "" {
        return ErrEmptyText
    }
    target, err := s.resolveTarget(ctx, postID)
    if err != nil {
        return err
    }
    c := &Comment{ID: uuid.New().String(), PostID: target, AuthorID: viewerID, Text: text, CreatedAt: time.Now()}
    if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
        return err
    }
    s.invalidateComments(ctx, target)
    return nil
}

// AddReply 新增回复；对回复的回复压平挂到一级评论（索引只认两层）
func (s *Service) AddReply(ctx context.Context, viewerID, commentID, postID, text string) error {
    if strings.TrimSpace(text) == "" {
        return ErrEmptyText
    }
    var parent Comment
    if err := s.db.WithContext(ctx).Where("id = ?", commentID).First(&parent).Error; err != nil {
        if errors.Is(err, gorm.ErrRecordNotFound) {
            return ErrCommentNotFound
        }
        return err
    }
    parentID := parent.ID
    if parent.ParentID != "" {
        parentID = parent.ParentID
    }
    c := &Comment{ID: uuid.New().String(), PostID: parent.PostID, ParentID: parentID, AuthorID: viewerID, Text: text, CreatedAt: time.Now()}
    if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
        return err
    }
    s.invalidateComments(ctx, parent.PostID)
    return nil
}

// Share 创建转发包装；目标必须已解析为原帖
func (s *Service) Share(ctx context.Context, viewerID string, in gateway.ShareInput) error {
    target, err := s.resolveTarget(ctx, in.PostID)
    if err != nil {
        return err
    }
    n := 0
    if in.Scope.GroupID != "" {
        n++
    }
    if in.Scope.EventID != "" {
        n++
    }
    if in.Scope.UserID != "" {
        n++
    }
    if n > 1 {
        return ErrBadScope
    }
    if in.Scope.UserID != "" {
        var cnt int64
        if err := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", in.Scope.UserID).Count(&cnt).Error; err != nil {
            return err
        }
        if cnt == 0 {
            return ErrUserNotFound
        }
    }
    orig, err := s.getPost(ctx, target)
    if err != nil {
        return err
    }
    wrapper := &Post{
        ID:             uuid.New().String(),
        AuthorID:       orig.AuthorID,
        Content:        in.Caption,
        Visibility:     orig.Visibility,
        OriginalPostID: target,
        SharedByID:     viewerID,
        GroupID:        in.Scope.GroupID,
        EventID:        in.Scope.EventID,
        SharedToUserID: in.Scope.UserID,
        CreatedAt:      time.Now(),
        UpdatedAt:      time.Now(),
    }
    return s.db.WithContext(ctx).Create(wrapper).Error
}

func (s *Service) Report(ctx context.Context, viewerID string, in gateway.ReportInput) error {
    if _, err := s.getPost(ctx, in.PostID); err != nil {
        return err
    }
    r := &Report{ID: uuid.New().String(), UserID: viewerID, PostID: in.PostID,
        ReportTypeID: in.ReportTypeID, Description: in.Description, CreatedAt: time.Now()}
    return s.db.WithContext(ctx).Create(r).Error
}

func (s *Service) Save(ctx context.Context, viewerID, postID string) error {
    if _, err := s.getPost(ctx, postID); err != nil {
        return err
    }
    r := &SavedPost{ID: uuid.New().String(), UserID: viewerID, PostID: postID}
    return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(r).Error
}

func (s *Service) Unsave(ctx context.Context, viewerID, postID string) error {
    return s.db.WithContext(ctx).
        Where("user_id = ? AND post_id = ?", viewerID, postID).
        Delete(&SavedPost{}).Error
}

func (s *Service) Hide(ctx context.Context, viewerID, postID string) error {
    if _, err := s.getPost(ctx, postID); err != nil {
        return err
    }
    r := &HiddenPost{ID: uuid.New().String(), UserID: viewerID, PostID: postID}
    return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(r).Error
}

// Delete 仅作者或转发者可删；连带清理评论与点赞
func (s *Service) Delete(ctx context.Context, viewerID, postID string) error {
    p, err := s.getPost(ctx, postID)
    if err != nil {
        return err
    }
    owner := p.AuthorID == viewerID
    if p.OriginalPostID != "" {
        owner = p.SharedByID == viewerID
    }
    if !owner {
        return ErrNotAllowed
    }
    return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        if err := tx.Where("post_id = ?", postID).Delete(&Comment{}).Error; err != nil {
            return err
        }
        if err := tx.Where("post_id = ?", postID).Delete(&Like{}).Error; err != nil {
            return err
        }
        if err := tx.Where("original_post_id = ?", postID).Delete(&Post{}).Error; err != nil {
            return err
        }
        return tx.Where("id = ?", postID).Delete(&Post{}).Error
    })
}

// Create 发帖
func (s *Service) Create(ctx context.Context, viewerID string, in gateway.PostInput) error {
    if strings.TrimSpace(in.Content) == "" && len(in.Attachments) == 0 {
        return ErrEmptyText
    }
    att, err := json.Marshal(in.Attachments)
    if err != nil {
        return err
    }
    p := &Post{
        ID:          uuid.New().String(),
        AuthorID:    viewerID,
        Content:     in.Content,
        Attachments: att,
        Visibility:  string(in.Visibility),
        Latitude:    in.Latitude,
        Longitude:   in.Longitude,
        PlaceName:   in.PlaceName,
        GroupID:     in.GroupID,
        EventID:     in.EventID,
        CreatedAt:   time.Now(),
        UpdatedAt:   time.Now(),
    }
    return s.db.WithContext(ctx).Create(p).Error
}

// Update 编辑自己的帖子
func (s *Service) Update(ctx context.Context, viewerID, postID string, in gateway.PostInput) error {
    p, err := s.getPost(ctx, postID)
    if err != nil {
        return err
    }
    if p.AuthorID != viewerID {
        return ErrNotAllowed
    }
    att, err := json.Marshal(in.Attachments)
    if err != nil {
        return err
    }
    return s.db.WithContext(ctx).Model(&Post{}).Where("id = ?", postID).Updates(map[string]any{
        "content":     in.Content,
        "attachments": att,
        "visibility":  string(in.Visibility),
        "latitude":    in.Latitude,
        "longitude":   in.Longitude,
        "place_name":  in.PlaceName,
        "updated_at":  time.Now(),
    }).Error
}

func (s *Service) invalidateComments(ctx context.Context, postID string) {
    if s.cache != nil {
        s.cache.InvalidatePost(ctx, postID)
    }
}
