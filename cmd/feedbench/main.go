package main

import (
    "context"
    "fmt"
    "math"
    "os"
    "sort"
    "strconv"
    "time"

    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    gormlogger "gorm.io/gorm/logger"

    "github.com/d60-Lab/feedsync/internal/engine"
    "github.com/d60-Lab/feedsync/internal/localgw"
    "github.com/d60-Lab/feedsync/internal/model"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func pct(vs []time.Duration, p float64) time.Duration {
    if len(vs) == 0 { return 0 }
    xs := append([]time.Duration(nil), vs...)
    sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
    k := int(math.Ceil(p*float64(len(xs)))) - 1
    if k < 0 { k = 0 }
    if k >= len(xs) { k = len(xs)-1 }
    return xs[k]
}

// 引擎端到端小压测：本地权威端（sqlite 内存库）+ 进程内网关适配，
// 测乐观写的即时性与异步确认的落地耗时。
func main() {
    POSTS := 200   // seed posts
    LIKES := 500   // like toggles
    COMMENTS := 50 // comment submissions
    if s := os.Getenv("POSTS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { POSTS = v } }
    if s := os.Getenv("LIKES"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { LIKES = v } }
    if s := os.Getenv("COMMENTS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { COMMENTS = v } }

    db := must(gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}))
    if err := localgw.Migrate(db); err != nil { panic(err) }
    svc := localgw.NewService(db, nil)
    viewer := must(svc.Seed(context.Background(), 20, POSTS))

    e := engine.New(localgw.NewClient(svc, viewer), viewer)
    defer e.Close()
    ctx := context.Background()

    // paginate through the whole feed
    loadStart := time.Now()
    if err := e.LoadFirstPage(ctx, model.VisibilityPublic); err != nil { panic(err) }
    pages := 1
    for e.HasMore() {
        if err := e.LoadNextPage(ctx); err != nil { panic(err) }
        pages++
    }
    fmt.Printf("feed loaded: posts=%d pages=%d in %v\n", len(e.Posts()), pages, time.Since(loadStart))

    // like toggles: optimistic apply latency vs async confirmation latency
    posts := e.Posts()
    applies := make([]time.Duration, 0, LIKES)
    confirms := make([]time.Duration, 0, LIKES)
    for i := 0; i < LIKES; i++ {
        p := posts[i%len(posts)]
        st := time.Now()
        if err := e.ToggleLike(p.ID); err != nil { panic(err) }
        applies = append(applies, time.Since(st))
        ev := <-e.Events()
        if ev.Kind != engine.EventLikeConfirmed {
            panic(fmt.Sprintf("unexpected event %d: %v", ev.Kind, ev.Err))
        }
        confirms = append(confirms, time.Since(st))
    }
    fmt.Printf("like optimistic apply: avg=%v p95=%v p99=%v\n", avg(applies), pct(applies, 0.95), pct(applies, 0.99))
    fmt.Printf("like gateway confirm:  avg=%v p95=%v p99=%v\n", avg(confirms), pct(confirms, 0.95), pct(confirms, 0.99))

    // comment submissions (non-optimistic: includes authoritative reload)
    subs := make([]time.Duration, 0, COMMENTS)
    for i := 0; i < COMMENTS; i++ {
        p := posts[i%len(posts)]
        if _, ok := e.Thread(p.ID); !ok {
            if err := e.OpenThread(ctx, p.ID); err != nil { panic(err) }
        }
        e.SetCommentDraft(p.ID, fmt.Sprintf("bench comment %d", i))
        st := time.Now()
        if err := e.SubmitComment(ctx, p.ID); err != nil { panic(err) }
        subs = append(subs, time.Since(st))
    }
    fmt.Printf("comment submit+reload: avg=%v p95=%v p99=%v\n", avg(subs), pct(subs, 0.95), pct(subs, 0.99))
}

func avg(vs []time.Duration) time.Duration {
    if len(vs) == 0 { return 0 }
    var sum time.Duration
    for _, d := range vs { sum += d }
    return sum / time.Duration(len(vs))
}
