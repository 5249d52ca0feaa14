package auth

import (
	"context"
	"errors"
	"sync"

	"projectflow/cli/internal/backend"
	pferrors "projectflow/cli/internal/errors"
)

type logoutCall struct {
	access  string
	refresh string
}

// fakeAPI answers GetMe with a fixed profile or error and records logout calls.
type fakeAPI struct {
	mu        sync.Mutex
	profile   *backend.Profile
	meErr     error
	logoutErr error
	meCalls   int
	logouts   []logoutCall
}

func (f *fakeAPI) GetMe(ctx context.Context, accessToken string) (*backend.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meCalls++
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.profile, nil
}

func (f *fakeAPI) Logout(ctx context.Context, accessToken, refreshToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts = append(f.logouts, logoutCall{access: accessToken, refresh: refreshToken})
	return f.logoutErr
}

func (f *fakeAPI) calls() (int, []logoutCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meCalls, append([]logoutCall(nil), f.logouts...)
}

type fakeNav struct {
	mu    sync.Mutex
	paths []string
}

func (n *fakeNav) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *fakeNav) navigations() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// fakeView holds only the elements it was created with.
type fakeView struct {
	mu       sync.Mutex
	text     map[string]string
	visible  map[string]bool
	handlers map[string]func()
}

func newFakeView(ids ...string) *fakeView {
	v := &fakeView{
		text:     map[string]string{},
		visible:  map[string]bool{},
		handlers: map[string]func(){},
	}
	for _, id := range ids {
		v.text[id] = ""
		v.visible[id] = false
	}
	return v
}

func newFullView() *fakeView {
	v := newFakeView(ElementCurrentUsername, ElementAuthenticatedMenu, ElementGuestMenu, ElementLogoutLink)
	v.visible[ElementGuestMenu] = true
	return v
}

func (v *fakeView) SetText(id, text string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.text[id]; !ok {
		return false
	}
	v.text[id] = text
	return true
}

func (v *fakeView) SetVisible(id string, visible bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.visible[id]; !ok {
		return ErrElementMissing
	}
	v.visible[id] = visible
	return nil
}

func (v *fakeView) OnClick(id string, handler func()) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.text[id]; !ok {
		return false
	}
	v.handlers[id] = handler
	return true
}

func (v *fakeView) click(id string) bool {
	v.mu.Lock()
	h := v.handlers[id]
	v.mu.Unlock()
	if h == nil {
		return false
	}
	h()
	return true
}

func (v *fakeView) textOf(id string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.text[id]
}

func (v *fakeView) isVisible(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible[id]
}

// brokenStore fails reads or deletes on demand.
type brokenStore struct {
	*MemoryStore
	getErr    error
	deleteErr error
}

func (b *brokenStore) Get(key string) (string, error) {
	if b.getErr != nil {
		return "", b.getErr
	}
	return b.MemoryStore.Get(key)
}

func (b *brokenStore) Delete(key string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	return b.MemoryStore.Delete(key)
}

var (
	errRejected  = pferrors.New(pferrors.InvalidToken, "status 401")
	errOffline   = pferrors.Wrap(pferrors.NetworkFailure, "identity request", errors.New("connection refused"))
	errMalformed = pferrors.Wrap(pferrors.MalformedProfile, "decode identity response", errors.New("unexpected EOF"))
)

func fullSession() map[string]string {
	return map[string]string{
		KeyAccessToken:  "access-1",
		KeyRefreshToken: "refresh-1",
		KeyUserKey:      "uk-1",
	}
}

type harness struct {
	store *MemoryStore
	api   *fakeAPI
	nav   *fakeNav
	view  *fakeView
	svc   *Service
}

func newHarness(session map[string]string, api *fakeAPI) *harness {
	h := &harness{
		store: NewMemoryStore(session),
		api:   api,
		nav:   &fakeNav{},
		view:  newFullView(),
	}
	h.svc = NewService(h.store, h.api, h.nav, h.view, Options{})
	return h
}
