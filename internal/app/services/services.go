// Package services holds the application's business logic.
//
// Services defined in this package:
//   - AuthService: registration, login, refresh tokens and account review
//   - ResearchService: research pages, collaboration requests and attachments
//   - SavedJobService: job board postings and bookmarks
package services

import "github.com/yigit/atcampus/internal/app/repositories"

var (
	_ ResearchStore = (*repositories.ResearchRepository)(nil)
	_ UserStore     = (*repositories.UserRepository)(nil)
	_ TokenStore    = (*repositories.TokenRepository)(nil)
	_ JobStore      = (*repositories.SavedJobRepository)(nil)
)
