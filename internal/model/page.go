package model

// Pagination 网关返回的分页元数据
type Pagination struct {
    Page         int `json:"page"`
    TotalRecords int `json:"total_records"`
}

// FeedPage 一页信息流及其分页信息
type FeedPage struct {
    Posts      []Post     `json:"posts"`
    Pagination Pagination `json:"pagination"`
}
