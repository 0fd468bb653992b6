package localgw

import (
    "context"
    "fmt"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm/clause"
)

// Seed 填充演示数据：nUsers 个用户互为好友链，nPosts 条公开帖。
// 返回第一个用户 ID 作为默认 viewer。
func (s *Service) Seed(ctx context.Context, nUsers, nPosts int) (string, error) {
    if nUsers < 1 {
        nUsers = 1
    }
    users := make([]User, nUsers)
    for i := 0; i < nUsers; i++ {
        users[i] = User{
            ID:        uuid.New().String(),
            Username:  fmt.Sprintf("user%04d", i),
            CreatedAt: time.Now(),
        }
    }
    if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&users, 500).Error; err != nil {
        return "", err
    }
    for i := 1; i < nUsers; i++ {
        f := Friend{ID: uuid.New().String(), UserID: users[0].ID, FriendID: users[i].ID, CreatedAt: time.Now()}
        if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&f).Error; err != nil {
            return "", err
        }
    }

    now := time.Now()
    posts := make([]Post, nPosts)
    for i := 0; i < nPosts; i++ {
        posts[i] = Post{
            ID:         uuid.New().String(),
            AuthorID:   users[i%nUsers].ID,
            Content:    fmt.Sprintf("seed post %d", i),
            Visibility: "public",
            // 错开时间保证稳定排序
            CreatedAt: now.Add(-time.Duration(i) * time.Second),
            UpdatedAt: now,
        }
    }
    if nPosts > 0 {
        if err := s.db.WithContext(ctx).CreateInBatches(&posts, 500).Error; err != nil {
            return "", err
        }
    }
    return users[0].ID, nil
}
