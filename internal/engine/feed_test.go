package engine

import (
    "context"
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/d60-Lab/feedsync/internal/model"
)

func TestLoadFirstPageReplacesFeed(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 3,
        post("p1", "alice", 0, false), post("p2", "bob", 0, false), post("p3", "carol", 0, false))
    gw.setPage(model.VisibilityFriends, 1, 1, post("f1", "alice", 0, false))

    e := New(gw, "me")
    defer e.Close()
    ctx := context.Background()

    require.NoError(t, e.LoadFirstPage(ctx, model.VisibilityPublic))
    require.Len(t, e.Posts(), 3)
    assert.Equal(t, 1, e.Page())
    assert.Equal(t, model.VisibilityPublic, e.Filter())
    assert.Equal(t, 3, e.TotalRecords())

    // 切换过滤器：整体替换，旧流不残留
    require.NoError(t, e.LoadFirstPage(ctx, model.VisibilityFriends))
    posts := e.Posts()
    require.Len(t, posts, 1)
    assert.Equal(t, "f1", posts[0].ID)
    assert.Equal(t, 1, e.Page())
    assert.Equal(t, model.VisibilityFriends, e.Filter())
}

func TestLoadFirstPageClearsThreadsAndDrafts(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 2, post("p1", "alice", 0, false), post("p2", "bob", 0, false))
    gw.setPage(model.VisibilityFriends, 1, 1, post("f1", "alice", 0, false))
    gw.setComments("p1", comment("c1", "p1", "", 0))

    e := New(gw, "me")
    defer e.Close()
    ctx := context.Background()

    require.NoError(t, e.LoadFirstPage(ctx, model.VisibilityPublic))
    require.NoError(t, e.OpenThread(ctx, "p1"))
    e.SetCommentDraft("p1", "half-typed")
    e.SetReplyDraft("p1", "c1", "reply draft")

    require.NoError(t, e.LoadFirstPage(ctx, model.VisibilityFriends))
    _, ok := e.Thread("p1")
    assert.False(t, ok, "threads must be dropped on filter switch")
    assert.Empty(t, e.CommentDraft("p1"))
    assert.Empty(t, e.ReplyDraft("p1", "c1"))
}

func TestLoadNextPageAppendsUntilExhausted(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 5,
        post("p1", "alice", 0, false), post("p2", "bob", 0, false), post("p3", "carol", 0, false))
    gw.setPage(model.VisibilityPublic, 2, 5,
        post("p4", "dave", 0, false), post("p5", "erin", 0, false))

    e := New(gw, "me")
    defer e.Close()
    ctx := context.Background()

    require.NoError(t, e.LoadFirstPage(ctx, model.VisibilityPublic))
    assert.True(t, e.HasMore())

    require.NoError(t, e.LoadNextPage(ctx))
    posts := e.Posts()
    require.Len(t, posts, 5)
    assert.Equal(t, "p4", posts[3].ID)
    assert.Equal(t, "p5", posts[4].ID)
    assert.Equal(t, 2, e.Page())
    assert.False(t, e.HasMore())

    err := e.LoadNextPage(ctx)
    require.ErrorIs(t, err, ErrNoMorePages)
    assert.Equal(t, 2, gw.callCount("fetch_feed"), "exhausted load must not hit the gateway")
}

func TestLoadNextPageDeduplicatesOverlap(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 4,
        post("p1", "alice", 0, false), post("p2", "bob", 0, false), post("p3", "carol", 0, false))
    // 翻页竞态：第 2 页重发了 p3
    gw.setPage(model.VisibilityPublic, 2, 4,
        post("p3", "carol", 0, false), post("p4", "dave", 0, false))

    e := New(gw, "me")
    defer e.Close()
    ctx := context.Background()

    require.NoError(t, e.LoadFirstPage(ctx, model.VisibilityPublic))
    require.NoError(t, e.LoadNextPage(ctx))
    posts := e.Posts()
    require.Len(t, posts, 4)
    ids := make(map[string]int)
    for _, p := range posts {
        ids[p.ID]++
    }
    for id, n := range ids {
        assert.Equal(t, 1, n, "post %s appears %d times", id, n)
    }
}

func TestLoadNextPageSingleInFlight(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 5,
        post("p1", "alice", 0, false), post("p2", "bob", 0, false))
    gw.setPage(model.VisibilityPublic, 2, 5,
        post("p3", "carol", 0, false))

    e := New(gw, "me")
    defer e.Close()
    ctx := context.Background()
    require.NoError(t, e.LoadFirstPage(ctx, model.VisibilityPublic))

    g := gw.gateFeedPage(model.VisibilityPublic, 2)
    errCh := make(chan error, 1)
    go func() { errCh <- e.LoadNextPage(ctx) }()
    <-g.entered

    // 第一拉在途，第二拉立即拒绝
    require.ErrorIs(t, e.LoadNextPage(ctx), ErrLoadInFlight)

    close(g.release)
    require.NoError(t, <-errCh)
    assert.Len(t, e.Posts(), 3)
}

func TestLoadNextPageStaleAfterFilterSwitch(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 5,
        post("p1", "alice", 0, false), post("p2", "bob", 0, false))
    gw.setPage(model.VisibilityPublic, 2, 5,
        post("p3", "carol", 0, false))
    gw.setPage(model.VisibilityFriends, 1, 1, post("f1", "alice", 0, false))

    e := New(gw, "me")
    defer e.Close()
    ctx := context.Background()
    require.NoError(t, e.LoadFirstPage(ctx, model.VisibilityPublic))

    g := gw.gateFeedPage(model.VisibilityPublic, 2)
    errCh := make(chan error, 1)
    go func() { errCh <- e.LoadNextPage(ctx) }()
    <-g.entered

    // 翻页在途时切换过滤器；旧流的响应必须被丢弃
    require.NoError(t, e.LoadFirstPage(ctx, model.VisibilityFriends))
    close(g.release)
    require.ErrorIs(t, <-errCh, ErrStaleResponse)

    posts := e.Posts()
    require.Len(t, posts, 1)
    assert.Equal(t, "f1", posts[0].ID)
    assert.Equal(t, model.VisibilityFriends, e.Filter())
    assert.Equal(t, 1, e.Page())
}

func TestLoadFirstPageFailureKeepsFeed(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 2, post("p1", "alice", 0, false), post("p2", "bob", 0, false))

    e := New(gw, "me")
    defer e.Close()
    ctx := context.Background()
    require.NoError(t, e.LoadFirstPage(ctx, model.VisibilityPublic))

    gw.fail("fetch_feed", errors.New("boom"))
    require.Error(t, e.LoadFirstPage(ctx, model.VisibilityFriends))
    assert.Len(t, e.Posts(), 2, "failed load must not clobber the cache")
    assert.Equal(t, model.VisibilityPublic, e.Filter())
}
