// internal/model/creator.go
package model

type Creator struct {
    ID         string `db:"id" json:"id"`
    Name       string `db:"name" json:"name"`
    Instagram  string `db:"instagram" json:"instagram"`
    City       string `db:"city" json:"cidade"`
    Followers  int    `db:"followers" json:"seguidores"`
    Status     string `db:"status" json:"status"`
}
