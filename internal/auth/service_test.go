package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"projectflow/cli/internal/backend"
	pferrors "projectflow/cli/internal/errors"
)

func TestAuthenticate(t *testing.T) {
	h := newHarness(nil, &fakeAPI{profile: &backend.Profile{Username: "alice"}})
	_, err := h.svc.Authenticate(context.Background())
	require.True(t, pferrors.Is(err, pferrors.MissingToken))
	require.False(t, h.svc.HasAccessToken())

	require.NoError(t, h.store.Set(KeyAccessToken, "access-1"))
	p, err := h.svc.Authenticate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice", p.Username)
	require.True(t, h.svc.HasAccessToken())
}

func TestCheckToken(t *testing.T) {
	tests := []struct {
		name     string
		session  map[string]string
		api      *fakeAPI
		path     string
		want     bool
		wantNav  []string
		wantGone bool
	}{
		{name: "valid", session: fullSession(), api: &fakeAPI{profile: &backend.Profile{Username: "alice"}}, path: "/projects/", want: true},
		{name: "malformed body still authenticated", session: fullSession(), api: &fakeAPI{meErr: errMalformed}, path: "/projects/", want: true},
		{name: "no token", api: &fakeAPI{}, path: "/projects/", wantNav: []string{"/login/"}},
		{name: "no token on login page", api: &fakeAPI{}, path: "/login/"},
		{name: "no token on register page", api: &fakeAPI{}, path: "/register/"},
		{name: "rejected", session: fullSession(), api: &fakeAPI{meErr: errRejected}, path: "/projects/", wantNav: []string{"/login/"}, wantGone: true},
		{name: "rejected on login page", session: fullSession(), api: &fakeAPI{meErr: errRejected}, path: "/login/", wantGone: true},
		{name: "network failure", session: fullSession(), api: &fakeAPI{meErr: errOffline}, path: "/tasks/", wantNav: []string{"/login/"}, wantGone: true},
		// the admin is not a sign-in page for this check
		{name: "no token on admin", api: &fakeAPI{}, path: "/admin/", wantNav: []string{"/login/"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.session, tt.api)
			got := h.svc.CheckToken(context.Background(), tt.path)

			require.Equal(t, tt.want, got)
			require.Equal(t, tt.wantNav, h.nav.navigations())
			if tt.wantGone {
				require.False(t, h.store.Has(KeyAccessToken))
				require.False(t, h.store.Has(KeyRefreshToken))
				require.True(t, h.store.Has(KeyUserKey))
			}
		})
	}
}

func TestUpdateUserInfo(t *testing.T) {
	t.Run("no token does nothing", func(t *testing.T) {
		h := newHarness(nil, &fakeAPI{})
		require.NoError(t, h.svc.UpdateUserInfo(context.Background()))

		meCalls, _ := h.api.calls()
		require.Zero(t, meCalls)
		require.True(t, h.view.isVisible(ElementGuestMenu))
	})

	t.Run("success shows user menu", func(t *testing.T) {
		h := newHarness(fullSession(), &fakeAPI{profile: &backend.Profile{Username: "bob", FirstName: "Bob"}})
		require.NoError(t, h.svc.UpdateUserInfo(context.Background()))

		require.Equal(t, "Bob", h.view.textOf(ElementCurrentUsername))
		require.True(t, h.view.isVisible(ElementAuthenticatedMenu))
		require.False(t, h.view.isVisible(ElementGuestMenu))
	})

	t.Run("failure shows guest menu and keeps tokens", func(t *testing.T) {
		for _, apiErr := range []error{errRejected, errOffline, errMalformed} {
			h := newHarness(fullSession(), &fakeAPI{meErr: apiErr})
			require.NoError(t, h.view.SetVisible(ElementAuthenticatedMenu, true))

			err := h.svc.UpdateUserInfo(context.Background())
			require.ErrorIs(t, err, apiErr)
			require.False(t, h.view.isVisible(ElementAuthenticatedMenu))
			require.True(t, h.view.isVisible(ElementGuestMenu))
			require.True(t, h.store.Has(KeyAccessToken))
			require.Empty(t, h.nav.navigations())
		}
	})

	t.Run("missing menu element", func(t *testing.T) {
		h := newHarness(fullSession(), &fakeAPI{profile: &backend.Profile{Username: "bob"}})
		h.svc.view = newFakeView(ElementCurrentUsername, ElementAuthenticatedMenu)

		err := h.svc.UpdateUserInfo(context.Background())
		require.ErrorIs(t, err, ErrElementMissing)
		require.Contains(t, err.Error(), ElementGuestMenu)
	})
}

func TestLogout(t *testing.T) {
	t.Run("with refresh token", func(t *testing.T) {
		h := newHarness(fullSession(), &fakeAPI{})
		require.NoError(t, h.svc.Logout(context.Background()))

		_, logouts := h.api.calls()
		require.Equal(t, []logoutCall{{access: "access-1", refresh: "refresh-1"}}, logouts)
		require.False(t, h.store.Has(KeyAccessToken))
		require.False(t, h.store.Has(KeyRefreshToken))
		require.False(t, h.store.Has(KeyUserKey))
		require.Equal(t, []string{"/login/"}, h.nav.navigations())
	})

	t.Run("without refresh token skips the request", func(t *testing.T) {
		h := newHarness(map[string]string{KeyAccessToken: "access-1", KeyUserKey: "uk"}, &fakeAPI{})
		require.NoError(t, h.svc.Logout(context.Background()))

		_, logouts := h.api.calls()
		require.Empty(t, logouts)
		require.False(t, h.store.Has(KeyAccessToken))
		require.False(t, h.store.Has(KeyUserKey))
		require.Equal(t, []string{"/login/"}, h.nav.navigations())
	})

	t.Run("failed request still signs out", func(t *testing.T) {
		h := newHarness(fullSession(), &fakeAPI{logoutErr: errOffline})
		require.NoError(t, h.svc.Logout(context.Background()))

		_, logouts := h.api.calls()
		require.Len(t, logouts, 1)
		require.False(t, h.store.Has(KeyAccessToken))
		require.False(t, h.store.Has(KeyRefreshToken))
		require.Equal(t, []string{"/login/"}, h.nav.navigations())
	})

	t.Run("delete failure is reported", func(t *testing.T) {
		diskErr := errors.New("keyring locked")
		store := &brokenStore{MemoryStore: NewMemoryStore(fullSession()), deleteErr: diskErr}
		nav := &fakeNav{}
		svc := NewService(store, &fakeAPI{}, nav, newFullView(), Options{})

		err := svc.Logout(context.Background())
		require.ErrorIs(t, err, diskErr)
		require.True(t, pferrors.Is(err, pferrors.StorageFailure))
		require.Equal(t, []string{"/login/"}, nav.navigations())
	})
}

func TestPageReady(t *testing.T) {
	t.Run("signed in binds logout", func(t *testing.T) {
		h := newHarness(fullSession(), &fakeAPI{profile: &backend.Profile{Username: "alice"}})
		require.NoError(t, h.svc.PageReady(context.Background(), "/projects/"))

		meCalls, _ := h.api.calls()
		require.Equal(t, 2, meCalls)
		require.Equal(t, "alice", h.view.textOf(ElementCurrentUsername))
		require.True(t, h.view.isVisible(ElementAuthenticatedMenu))
		require.Empty(t, h.nav.navigations())

		require.True(t, h.view.click(ElementLogoutLink))
		_, logouts := h.api.calls()
		require.Len(t, logouts, 1)
		require.False(t, h.store.Has(KeyAccessToken))
		require.Equal(t, []string{"/login/"}, h.nav.navigations())
	})

	t.Run("signed out only checks", func(t *testing.T) {
		h := newHarness(nil, &fakeAPI{})
		require.NoError(t, h.svc.PageReady(context.Background(), "/projects/"))

		meCalls, _ := h.api.calls()
		require.Zero(t, meCalls)
		require.Equal(t, []string{"/login/"}, h.nav.navigations())
	})

	t.Run("rejected token", func(t *testing.T) {
		h := newHarness(fullSession(), &fakeAPI{meErr: errRejected})
		// the user info call may find the token already cleared
		_ = h.svc.PageReady(context.Background(), "/projects/")

		require.Equal(t, []string{"/login/"}, h.nav.navigations())
		require.True(t, h.view.isVisible(ElementGuestMenu))
		require.False(t, h.store.Has(KeyAccessToken))
	})

	t.Run("logout survives cancelled load context", func(t *testing.T) {
		h := newHarness(fullSession(), &fakeAPI{profile: &backend.Profile{Username: "alice"}})
		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, h.svc.PageReady(ctx, "/projects/"))
		cancel()

		require.True(t, h.view.click(ElementLogoutLink))
		_, logouts := h.api.calls()
		require.Len(t, logouts, 1)
	})
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "", DisplayName(nil))
	require.Equal(t, "alice", DisplayName(&backend.Profile{Username: "alice"}))
	require.Equal(t, "Alice Smith", DisplayName(&backend.Profile{Username: "alice", FirstName: "Alice", LastName: "Smith"}))
	require.Equal(t, "Smith", DisplayName(&backend.Profile{Username: "alice", LastName: "Smith"}))
}
