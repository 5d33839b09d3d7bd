package services

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/dmitrijs2005/postkeeper/internal/common"
	"github.com/dmitrijs2005/postkeeper/internal/dbx"
	"github.com/dmitrijs2005/postkeeper/internal/server/models"
	accountsrepo "github.com/dmitrijs2005/postkeeper/internal/server/repositories/accounts"
	postsrepo "github.com/dmitrijs2005/postkeeper/internal/server/repositories/posts"
	ratingsrepo "github.com/dmitrijs2005/postkeeper/internal/server/repositories/ratings"
	revokedrepo "github.com/dmitrijs2005/postkeeper/internal/server/repositories/revokedtokens"
)

// --- in-memory fakes for the repository interfaces ---

type fakeAccountsRepo struct {
	accounts  map[string]*models.Account
	createErr error
	getErr    error
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{accounts: make(map[string]*models.Account)}
}

func (f *fakeAccountsRepo) Create(ctx context.Context, account *models.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.accounts[account.Nickname]; ok {
		return common.ErrorAlreadyExists
	}
	f.accounts[account.Nickname] = account
	return nil
}

func (f *fakeAccountsRepo) GetByNickname(ctx context.Context, nickname string) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	account, ok := f.accounts[nickname]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return account, nil
}

type fakePostsRepo struct {
	posts  map[int64]*models.Post
	nextID int64

	createErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error
}

func newFakePostsRepo() *fakePostsRepo {
	return &fakePostsRepo{posts: make(map[int64]*models.Post), nextID: 1}
}

func (f *fakePostsRepo) Create(ctx context.Context, author, title, content string) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	f.posts[id] = &models.Post{ID: id, Author: author, Title: title, Content: content, PostedAt: time.Now()}
	return id, nil
}

func (f *fakePostsRepo) Get(ctx context.Context, id int64) (*models.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostsRepo) List(ctx context.Context, limit int) ([]*models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make([]int64, 0, len(f.posts))
	for id := range f.posts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	result := make([]*models.Post, 0, limit)
	for _, id := range ids {
		if len(result) == limit {
			break
		}
		copied := *f.posts[id]
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakePostsRepo) Update(ctx context.Context, id int64, newTitle, newContent string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	post, ok := f.posts[id]
	if !ok {
		return common.ErrorNotFound
	}
	if newTitle != "" {
		post.Title = newTitle
	}
	if newContent != "" {
		post.Content = newContent
	}
	return nil
}

func (f *fakePostsRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.posts, id)
	return nil
}

type fakeRatingsRepo struct {
	// votes[postID][nickname] = polarity
	votes map[int64]map[string]bool

	listErr  error
	setErr   error
	unsetErr error
}

func newFakeRatingsRepo() *fakeRatingsRepo {
	return &fakeRatingsRepo{votes: make(map[int64]map[string]bool)}
}

func (f *fakeRatingsRepo) ListForPost(ctx context.Context, postID int64) ([]string, []string, error) {
	if f.listErr != nil {
		return nil, nil, f.listErr
	}
	likes := []string{}
	dislikes := []string{}
	for nickname, isLike := range f.votes[postID] {
		if isLike {
			likes = append(likes, nickname)
		} else {
			dislikes = append(dislikes, nickname)
		}
	}
	sort.Strings(likes)
	sort.Strings(dislikes)
	return likes, dislikes, nil
}

func (f *fakeRatingsRepo) Set(ctx context.Context, postID int64, nickname string, isLike bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.votes[postID] == nil {
		f.votes[postID] = make(map[string]bool)
	}
	f.votes[postID][nickname] = isLike
	return nil
}

func (f *fakeRatingsRepo) Unset(ctx context.Context, postID int64, nickname string) error {
	if f.unsetErr != nil {
		return f.unsetErr
	}
	delete(f.votes[postID], nickname)
	return nil
}

func (f *fakeRatingsRepo) DeleteForPost(ctx context.Context, postID int64) error {
	delete(f.votes, postID)
	return nil
}

type fakeRevokedRepo struct {
	revoked map[string]time.Time

	purgeCalls int

	isRevokedErr error
	revokeErr    error
	purgeErr     error
}

func newFakeRevokedRepo() *fakeRevokedRepo {
	return &fakeRevokedRepo{revoked: make(map[string]time.Time)}
}

func (f *fakeRevokedRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	if f.isRevokedErr != nil {
		return false, f.isRevokedErr
	}
	_, ok := f.revoked[token]
	return ok, nil
}

func (f *fakeRevokedRepo) Revoke(ctx context.Context, token string, expires time.Time) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	if _, ok := f.revoked[token]; !ok {
		f.revoked[token] = expires
	}
	return nil
}

func (f *fakeRevokedRepo) PurgeExpired(ctx context.Context) error {
	f.purgeCalls++
	if f.purgeErr != nil {
		return f.purgeErr
	}
	now := time.Now()
	for token, expires := range f.revoked {
		if !expires.After(now) {
			delete(f.revoked, token)
		}
	}
	return nil
}

type fakeRepoManager struct {
	accounts *fakeAccountsRepo
	posts    *fakePostsRepo
	ratings  *fakeRatingsRepo
	revoked  *fakeRevokedRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		accounts: newFakeAccountsRepo(),
		posts:    newFakePostsRepo(),
		ratings:  newFakeRatingsRepo(),
		revoked:  newFakeRevokedRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository { return m.accounts }

func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository { return m.posts }

func (m *fakeRepoManager) Ratings(db dbx.DBTX) ratingsrepo.Repository { return m.ratings }

func (m *fakeRepoManager) RevokedTokens(db dbx.DBTX) revokedrepo.Repository { return m.revoked }
