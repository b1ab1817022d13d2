package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryShellStoreDefaults(t *testing.T) {
	store := NewInMemoryShellStore()
	state, err := store.Load(context.Background(), ViewerContext{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, DefaultShellState(), state)
	assert.True(t, state.DarkMode)
	assert.Equal(t, RoleManufacturer, state.Role)
	assert.Equal(t, TabDashboard, state.Tab)
}

func TestInMemoryShellStoreUpdateNormalizes(t *testing.T) {
	store := NewInMemoryShellStore()
	ctx := context.Background()
	viewer := ViewerContext{UserID: "u1"}

	state, err := store.Update(ctx, viewer, func(st *ShellState) {
		st.Tab = "settings"
		st.Role = "Distributor"
		st.AlertsOpen = true
	})
	require.NoError(t, err)
	assert.Equal(t, TabDashboard, state.Tab)
	assert.Equal(t, RoleManufacturer, state.Role)
	assert.True(t, state.AlertsOpen)

	loaded, err := store.Load(ctx, viewer)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestInMemoryShellStoreIsolatesViewers(t *testing.T) {
	store := NewInMemoryShellStore()
	ctx := context.Background()
	_, err := store.Update(ctx, ViewerContext{UserID: "a"}, func(st *ShellState) { st.Tab = TabOrders })
	require.NoError(t, err)

	other, err := store.Load(ctx, ViewerContext{UserID: "b"})
	require.NoError(t, err)
	assert.Equal(t, TabDashboard, other.Tab)

	anon, err := store.Load(ctx, ViewerContext{})
	require.NoError(t, err)
	owner, err := store.Load(ctx, ViewerContext{UserID: "owner"})
	require.NoError(t, err)
	assert.Equal(t, owner, anon)
}
