package engine

import (
    "context"
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/d60-Lab/feedsync/internal/model"
)

func TestOpenThreadFetchesOnceThenToggles(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    gw.setComments("p1", comment("c1", "p1", "", 0), comment("c2", "p1", "", 0))
    e := loadPublic(t, gw, "me")
    ctx := context.Background()

    require.NoError(t, e.OpenThread(ctx, "p1"))
    snap, ok := e.Thread("p1")
    require.True(t, ok)
    assert.True(t, snap.Show)
    assert.Len(t, snap.Comments, 2)
    assert.Equal(t, 1, gw.callCount("fetch_comments"))

    // 已加载：只翻转可见性，绝不隐式重拉
    require.NoError(t, e.OpenThread(ctx, "p1"))
    snap, _ = e.Thread("p1")
    assert.False(t, snap.Show)
    assert.Len(t, snap.Comments, 2, "collapsed thread keeps its comments")
    assert.Equal(t, 1, gw.callCount("fetch_comments"))

    require.NoError(t, e.OpenThread(ctx, "p1"))
    snap, _ = e.Thread("p1")
    assert.True(t, snap.Show)
    assert.Equal(t, 1, gw.callCount("fetch_comments"))
}

func TestOpenThreadDuplicateWhileLoading(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    gw.setComments("p1", comment("c1", "p1", "", 0))
    e := loadPublic(t, gw, "me")
    ctx := context.Background()

    g := gw.gateOp("fetch_comments")
    errCh := make(chan error, 1)
    go func() { errCh <- e.OpenThread(ctx, "p1") }()
    <-g.entered

    // 首拉在途时的重复打开被忽略，不触发第二次拉取
    require.NoError(t, e.OpenThread(ctx, "p1"))
    assert.Equal(t, 1, gw.callCount("fetch_comments"))

    close(g.release)
    require.NoError(t, <-errCh)
    snap, ok := e.Thread("p1")
    require.True(t, ok)
    assert.True(t, snap.Show)
}

func TestOpenThreadFailureAllowsRetry(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    gw.setComments("p1", comment("c1", "p1", "", 0))
    gw.fail("fetch_comments", errors.New("boom"))
    e := loadPublic(t, gw, "me")
    ctx := context.Background()

    require.Error(t, e.OpenThread(ctx, "p1"))
    _, ok := e.Thread("p1")
    assert.False(t, ok, "failed first fetch must remove the placeholder")

    gw.pass("fetch_comments")
    require.NoError(t, e.OpenThread(ctx, "p1"))
    snap, ok := e.Thread("p1")
    require.True(t, ok)
    assert.True(t, snap.Show)
    assert.Len(t, snap.Comments, 1)
}

func TestOpenThreadUnknownPost(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    e := loadPublic(t, gw, "me")

    require.ErrorIs(t, e.OpenThread(context.Background(), "ghost"), ErrUnknownPost)
    assert.Equal(t, 0, gw.callCount("fetch_comments"))
}

func TestThreadNestsRepliesUnderParents(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    gw.setComments("p1",
        comment("c1", "p1", "", 0),
        comment("c2", "p1", "", 0),
        comment("r1", "p1", "c1", 0),
        comment("r2", "p1", "c1", 0),
        comment("lost", "p1", "deleted-parent", 0))
    e := loadPublic(t, gw, "me")

    require.NoError(t, e.OpenThread(context.Background(), "p1"))
    snap, ok := e.Thread("p1")
    require.True(t, ok)
    require.Len(t, snap.Comments, 3)
    assert.Equal(t, "c1", snap.Comments[0].Comment.ID)
    require.Len(t, snap.Comments[0].Replies, 2)
    assert.Equal(t, "r1", snap.Comments[0].Replies[0].ID)
    assert.Equal(t, "r2", snap.Comments[0].Replies[1].ID)
    assert.Empty(t, snap.Comments[1].Replies)
    // 父评论不在本页的回复退化为一级展示
    assert.Equal(t, "lost", snap.Comments[2].Comment.ID)
}

func TestToggleReplyInputAffectsSingleComment(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    gw.setComments("p1", comment("c1", "p1", "", 0), comment("c2", "p1", "", 0))
    e := loadPublic(t, gw, "me")
    require.NoError(t, e.OpenThread(context.Background(), "p1"))

    require.NoError(t, e.ToggleReplyInput("p1", "c1"))
    snap, _ := e.Thread("p1")
    assert.True(t, snap.Comments[0].Comment.ShowReplyInput)
    assert.False(t, snap.Comments[1].Comment.ShowReplyInput, "siblings stay untouched")

    require.NoError(t, e.ToggleReplyInput("p1", "c1"))
    snap, _ = e.Thread("p1")
    assert.False(t, snap.Comments[0].Comment.ShowReplyInput)

    require.ErrorIs(t, e.ToggleReplyInput("p1", "ghost"), ErrUnknownComment)
}

func TestSubmitCommentReloadsThenClearsDraft(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    gw.setComments("p1", comment("c1", "p1", "", 0))
    e := loadPublic(t, gw, "me")
    ctx := context.Background()

    e.SetCommentDraft("p1", "  hello there  ")
    require.NoError(t, e.SubmitComment(ctx, "p1"))

    assert.Equal(t, 1, gw.callCount("add_comment"))
    assert.Equal(t, 1, gw.callCount("fetch_comments"), "submit triggers an authoritative reload")
    assert.Empty(t, e.CommentDraft("p1"), "draft cleared only after successful reload")
    assert.Equal(t, 1, e.Posts()[0].TotalComments)

    snap, ok := e.Thread("p1")
    require.True(t, ok)
    assert.True(t, snap.Show)
}

func TestSubmitCommentEmptyDraft(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    e := loadPublic(t, gw, "me")
    ctx := context.Background()

    require.ErrorIs(t, e.SubmitComment(ctx, "p1"), ErrEmptyDraft)
    e.SetCommentDraft("p1", "   ")
    require.ErrorIs(t, e.SubmitComment(ctx, "p1"), ErrEmptyDraft)
    assert.Equal(t, 0, gw.callCount("add_comment"))
}

func TestSubmitCommentFailureKeepsDraft(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    gw.fail("add_comment", errors.New("rejected"))
    e := loadPublic(t, gw, "me")
    ctx := context.Background()

    e.SetCommentDraft("p1", "my comment")
    require.Error(t, e.SubmitComment(ctx, "p1"))
    assert.Equal(t, "my comment", e.CommentDraft("p1"), "failed submit keeps the draft for retry")
    assert.Equal(t, 0, e.Posts()[0].TotalComments)
}

func TestSubmitCommentReloadFailureKeepsDraftAndOldList(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    gw.setComments("p1", comment("c1", "p1", "", 0), comment("c2", "p1", "", 0))
    e := loadPublic(t, gw, "me")
    ctx := context.Background()
    require.NoError(t, e.OpenThread(ctx, "p1"))

    // 提交落地但权威重拉失败：旧列表保留，草稿保留
    gw.fail("fetch_comments", errors.New("reload failed"))
    e.SetCommentDraft("p1", "landed but unseen")
    require.Error(t, e.SubmitComment(ctx, "p1"))

    assert.Equal(t, 1, gw.callCount("add_comment"))
    assert.Equal(t, "landed but unseen", e.CommentDraft("p1"))
    snap, ok := e.Thread("p1")
    require.True(t, ok)
    assert.False(t, snap.Loading)
    assert.Len(t, snap.Comments, 2, "reload failure must not clobber the cached thread")
    assert.Equal(t, 0, e.Posts()[0].TotalComments)
}

func TestSubmitReplyFailureKeepsDraft(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    gw.setComments("p1", comment("c1", "p1", "", 0))
    e := loadPublic(t, gw, "me")
    ctx := context.Background()
    require.NoError(t, e.OpenThread(ctx, "p1"))

    e.SetReplyDraft("p1", "c1", "hi")
    gw.fail("add_reply", errors.New("rejected"))
    require.Error(t, e.SubmitReply(ctx, "p1", "c1"))
    assert.Equal(t, "hi", e.ReplyDraft("p1", "c1"))

    gw.pass("add_reply")
    require.NoError(t, e.SubmitReply(ctx, "p1", "c1"))
    assert.Empty(t, e.ReplyDraft("p1", "c1"))
    assert.Equal(t, 1, e.Posts()[0].TotalComments)
}

func TestSubmitReplyPreconditions(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 1, post("p1", "alice", 0, false))
    gw.setComments("p1", comment("c1", "p1", "", 0))
    e := loadPublic(t, gw, "me")
    ctx := context.Background()

    require.ErrorIs(t, e.SubmitReply(ctx, "p1", "c1"), ErrThreadNotLoaded)
    require.NoError(t, e.OpenThread(ctx, "p1"))
    require.ErrorIs(t, e.SubmitReply(ctx, "p1", "ghost"), ErrUnknownComment)
    require.ErrorIs(t, e.SubmitReply(ctx, "p1", "c1"), ErrEmptyDraft)
    assert.Equal(t, 0, gw.callCount("add_reply"))
}

func TestReplyDraftsKeyedPerComment(t *testing.T) {
    gw := newFakeGateway()
    gw.setPage(model.VisibilityPublic, 1, 2, post("p1", "alice", 0, false), post("p2", "bob", 0, false))
    e := loadPublic(t, gw, "me")

    e.SetReplyDraft("p1", "c1", "first")
    e.SetReplyDraft("p1", "c2", "second")
    e.SetReplyDraft("p2", "c1", "other post")

    assert.Equal(t, "first", e.ReplyDraft("p1", "c1"))
    assert.Equal(t, "second", e.ReplyDraft("p1", "c2"))
    assert.Equal(t, "other post", e.ReplyDraft("p2", "c1"))

    e.SetReplyDraft("p1", "c1", "")
    assert.Empty(t, e.ReplyDraft("p1", "c1"))
    assert.Equal(t, "second", e.ReplyDraft("p1", "c2"))
}
