package engine

import "github.com/d60-Lab/feedsync/internal/model"

// CommentView 渲染用评论视图：一级评论 + 其回复副本
type CommentView struct {
    Comment model.Comment
    Replies []model.Comment
}

// buildThread 把网关返回的评论页索引成两层结构。
// 兼容两种返回形态：回复内嵌在 Replies 中，或平铺并带 ParentID。
// 孤儿回复（父评论不在本页）按一级评论兜底展示。
func buildThread(comments []model.Comment) []commentNode {
    nodes := make([]commentNode, 0, len(comments))
    index := make(map[string]int, len(comments))

    for _, c := range comments {
        if c.ParentID != "" {
            continue
        }
        n := commentNode{c: c}
        n.c.Replies = nil
        if len(c.Replies) > 0 {
            n.replies = append(n.replies, c.Replies...)
        }
        index[c.ID] = len(nodes)
        nodes = append(nodes, n)
    }
    for _, c := range comments {
        if c.ParentID == "" {
            continue
        }
        if i, ok := index[c.ParentID]; ok {
            nodes[i].replies = append(nodes[i].replies, c)
            continue
        }
        n := commentNode{c: c}
        n.c.Replies = nil
        index[c.ID] = len(nodes)
        nodes = append(nodes, n)
    }
    return nodes
}
