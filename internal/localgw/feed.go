package localgw

import (
    "context"
    "encoding/json"

    "github.com/d60-Lab/feedsync/internal/model"
)

const (
    // FeedPageSize 信息流分页大小
    FeedPageSize = 10
    // CommentPageSize 评论分页大小
    CommentPageSize = 20
)

// FeedPage 查询一页信息流：排除 viewer 隐藏的行，按可见范围过滤，
// 时间倒序，并投影成引擎消费的线路模型。
func (s *Service) FeedPage(ctx context.Context, viewerID string, filter model.Visibility, page int) (*model.FeedPage, error) {
    if page < 1 {
        page = 1
    }
    q := s.db.WithContext(ctx).Model(&Post{}).
        Where("id NOT IN (?)", s.db.Model(&HiddenPost{}).Select("post_id").Where("user_id = ?", viewerID))
    if filter != "" {
        q = q.Where("visibility = ?", string(filter))
    }

    var total int64
    if err := q.Count(&total).Error; err != nil {
        return nil, err
    }
    var rows []Post
    if err := q.Order("created_at DESC").
        Offset((page - 1) * FeedPageSize).
        Limit(FeedPageSize).
        Find(&rows).Error; err != nil {
        return nil, err
    }

    posts := make([]model.Post, 0, len(rows))
    for i := range rows {
        p, err := s.projectPost(ctx, viewerID, &rows[i])
        if err != nil {
            return nil, err
        }
        posts = append(posts, *p)
    }
    return &model.FeedPage{
        Posts:      posts,
        Pagination: model.Pagination{Page: page, TotalRecords: int(total)},
    }, nil
}

// projectPost 行记录 -> 线路模型；转发包装取原帖内容与作者
func (s *Service) projectPost(ctx context.Context, viewerID string, row *Post) (*model.Post, error) {
    src := row
    out := &model.Post{
        ID:         row.ID,
        Visibility: model.Visibility(row.Visibility),
        GroupID:    row.GroupID,
        EventID:    row.EventID,
        CreatedAt:  row.CreatedAt,
    }
    if row.OriginalPostID != "" {
        orig, err := s.getPost(ctx, row.OriginalPostID)
        if err == nil {
            src = orig
        }
        out.IsShared = true
        out.OriginalPostID = row.OriginalPostID
        if sb, err := s.author(ctx, row.SharedByID); err == nil {
            out.SharedBy = &sb
        }
    }
    out.Content = src.Content
    out.Latitude = src.Latitude
    out.Longitude = src.Longitude
    out.PlaceName = src.PlaceName
    if len(src.Attachments) > 0 {
        _ = json.Unmarshal(src.Attachments, &out.Attachments)
    }
    author, err := s.author(ctx, src.AuthorID)
    if err != nil {
        return nil, err
    }
    out.Author = author

    // 计数与 viewer 相关位都挂在目标帖上
    target := row.ID
    if row.OriginalPostID != "" {
        target = row.OriginalPostID
    }
    var likes, comments, shares, mine, saved int64
    if err := s.db.WithContext(ctx).Model(&Like{}).Where("post_id = ?", target).Count(&likes).Error; err != nil {
        return nil, err
    }
    if err := s.db.WithContext(ctx).Model(&Comment{}).Where("post_id = ?", target).Count(&comments).Error; err != nil {
        return nil, err
    }
    if err := s.db.WithContext(ctx).Model(&Post{}).Where("original_post_id = ?", target).Count(&shares).Error; err != nil {
        return nil, err
    }
    if err := s.db.WithContext(ctx).Model(&Like{}).
        Where("post_id = ? AND user_id = ?", target, viewerID).Count(&mine).Error; err != nil {
        return nil, err
    }
    if err := s.db.WithContext(ctx).Model(&SavedPost{}).
        Where("post_id = ? AND user_id = ?", row.ID, viewerID).Count(&saved).Error; err != nil {
        return nil, err
    }
    out.TotalLikes = int(likes)
    out.TotalComments = int(comments)
    out.TotalShares = int(shares)
    out.IsLiked = mine > 0
    out.IsSaved = saved > 0
    return out, nil
}

func (s *Service) author(ctx context.Context, userID string) (model.Author, error) {
    var u User
    if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
        return model.Author{}, err
    }
    return model.Author{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}, nil
}

// Comments 查询一页评论（一级 + 其全部回复，平铺返回带 ParentID）。
// 命中缓存直接返回；未命中回库并写缓存。
func (s *Service) Comments(ctx context.Context, viewerID, postID string, page int) ([]model.Comment, error) {
    if page < 1 {
        page = 1
    }
    target, err := s.resolveTarget(ctx, postID)
    if err != nil {
        return nil, err
    }
    if s.cache != nil {
        if cached, ok := s.cache.GetComments(ctx, target, viewerID, page); ok {
            return cached, nil
        }
    }

    var tops []Comment
    if err := s.db.WithContext(ctx).
        Where("post_id = ? AND parent_id = ''", target).
        Order("created_at ASC").
        Offset((page - 1) * CommentPageSize).
        Limit(CommentPageSize).
        Find(&tops).Error; err != nil {
        return nil, err
    }
    ids := make([]string, len(tops))
    for i := range tops {
        ids[i] = tops[i].ID
    }
    var replies []Comment
    if len(ids) > 0 {
        if err := s.db.WithContext(ctx).
            Where("parent_id IN ?", ids).
            Order("created_at ASC").
            Find(&replies).Error; err != nil {
            return nil, err
        }
    }

    out := make([]model.Comment, 0, len(tops)+len(replies))
    for i := range tops {
        c, err := s.projectComment(ctx, viewerID, &tops[i])
        if err != nil {
            return nil, err
        }
        out = append(out, *c)
    }
    for i := range replies {
        c, err := s.projectComment(ctx, viewerID, &replies[i])
        if err != nil {
            return nil, err
        }
        out = append(out, *c)
    }

    if s.cache != nil {
        s.cache.SetComments(ctx, target, viewerID, page, out)
    }
    return out, nil
}

func (s *Service) projectComment(ctx context.Context, viewerID string, row *Comment) (*model.Comment, error) {
    author, err := s.author(ctx, row.AuthorID)
    if err != nil {
        return nil, err
    }
    var likes, mine int64
    if err := s.db.WithContext(ctx).Model(&Like{}).Where("comment_id = ?", row.ID).Count(&likes).Error; err != nil {
        return nil, err
    }
    if err := s.db.WithContext(ctx).Model(&Like{}).
        Where("comment_id = ? AND user_id = ?", row.ID, viewerID).Count(&mine).Error; err != nil {
        return nil, err
    }
    return &model.Comment{
        ID:         row.ID,
        PostID:     row.PostID,
        ParentID:   row.ParentID,
        Author:     author,
        Text:       row.Text,
        TotalLikes: int(likes),
        IsLiked:    mine > 0,
        CreatedAt:  row.CreatedAt,
    }, nil
}

// Friends 好友列表（好友浮层数据源）
func (s *Service) Friends(ctx context.Context, userID string) ([]model.Author, error) {
    var rows []Friend
    if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
        return nil, err
    }
    out := make([]model.Author, 0, len(rows))
    for _, f := range rows {
        if a, err := s.author(ctx, f.FriendID); err == nil {
            out = append(out, a)
        }
    }
    return out, nil
}
