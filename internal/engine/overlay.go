package engine

// OverlayKind 浮层类型
type OverlayKind int

const (
    OverlayNone OverlayKind = iota
    OverlayCompose
    OverlayEdit
    OverlayShare
    OverlayReport
    OverlayFriendship
)

// Overlay 单槽位浮层状态：同一时刻至多一个浮层，互斥由结构保证。
// TargetID 为浮层作用对象（编辑/分享/举报为帖子，好友浮层为用户）。
type Overlay struct {
    Kind     OverlayKind
    TargetID string
}

// OpenOverlay 打开浮层，隐式关闭当前浮层
func (e *Engine) OpenOverlay(kind OverlayKind, targetID string) {
    e.mu.Lock()
    defer e.mu.Unlock()
    if e.closed {
        return
    }
    if kind == OverlayNone {
        e.closeOverlayLocked()
        return
    }
    e.overlay = Overlay{Kind: kind, TargetID: targetID}
}

// CloseOverlay 关闭浮层并清空目标，旧数据不得泄漏到下次打开
func (e *Engine) CloseOverlay() {
    e.mu.Lock()
    defer e.mu.Unlock()
    e.closeOverlayLocked()
}

func (e *Engine) closeOverlayLocked() {
    e.overlay = Overlay{}
}

// ActiveOverlay 当前浮层快照
func (e *Engine) ActiveOverlay() Overlay {
    e.mu.Lock()
    defer e.mu.Unlock()
    return e.overlay
}
