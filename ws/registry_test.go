package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maninivas13/farmasthi/internal/models"
)

func testClient(registry *Registry, userID string, role models.UserRole, bufferSize int) *Client {
	return newClient(registry, nil, userID, role, bufferSize)
}

// receive pops one buffered message without blocking the test on an
// empty channel.
func receive(t *testing.T, c *Client) (any, bool) {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		return msg, ok
	default:
		return nil, false
	}
}

func TestRegistry_SendToUserReachesAllChannels(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	phone := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)
	tablet := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)
	registry.Register(phone)
	registry.Register(tablet)

	registry.SendToUser("farmer-1", "hello")

	msg, ok := receive(t, phone)
	require.True(t, ok)
	assert.Equal(t, "hello", msg)

	msg, ok = receive(t, tablet)
	require.True(t, ok)
	assert.Equal(t, "hello", msg)
}

func TestRegistry_SendToUnknownUserIsNoop(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	assert.NotPanics(t, func() {
		registry.SendToUser("nobody", "hello")
	})
}

func TestRegistry_UnregisterLeavesOtherChannels(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	phone := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)
	tablet := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)
	registry.Register(phone)
	registry.Register(tablet)

	registry.Unregister(phone)

	assert.True(t, registry.IsConnected("farmer-1"))
	assert.Equal(t, 1, registry.ConnectionCount("farmer-1"))

	registry.SendToUser("farmer-1", "still here")
	msg, ok := receive(t, tablet)
	require.True(t, ok)
	assert.Equal(t, "still here", msg)

	// The removed channel is closed and receives nothing further.
	_, open := <-phone.send
	assert.False(t, open)
}

func TestRegistry_LastUnregisterRemovesEntry(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	client := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)
	registry.Register(client)
	registry.Unregister(client)

	assert.False(t, registry.IsConnected("farmer-1"))
	assert.Equal(t, 0, registry.ClientCount())
}

func TestRegistry_UnregisterTwiceIsSafe(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	client := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)
	registry.Register(client)

	registry.Unregister(client)
	assert.NotPanics(t, func() {
		registry.Unregister(client)
	})
}

func TestRegistry_BroadcastToRole(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	officerA := testClient(registry, "officer-1", models.UserRoleOfficer, 4)
	officerB := testClient(registry, "officer-2", models.UserRoleOfficer, 4)
	farmer := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)
	registry.Register(officerA)
	registry.Register(officerB)
	registry.Register(farmer)

	registry.BroadcastToRole(models.UserRoleOfficer, "new query")

	msg, ok := receive(t, officerA)
	require.True(t, ok)
	assert.Equal(t, "new query", msg)

	msg, ok = receive(t, officerB)
	require.True(t, ok)
	assert.Equal(t, "new query", msg)

	_, ok = receive(t, farmer)
	assert.False(t, ok, "farmer must not receive officer broadcasts")
}

func TestRegistry_BroadcastAll(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	officer := testClient(registry, "officer-1", models.UserRoleOfficer, 4)
	farmer := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)
	registry.Register(officer)
	registry.Register(farmer)

	registry.BroadcastAll("maintenance window")

	_, ok := receive(t, officer)
	assert.True(t, ok)
	_, ok = receive(t, farmer)
	assert.True(t, ok)
}

func TestRegistry_EvictsOldestBeyondBound(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(2)
	first := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)
	second := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)
	third := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)

	registry.Register(first)
	registry.Register(second)
	registry.Register(third)

	assert.Equal(t, 2, registry.ConnectionCount("farmer-1"))

	// The evicted channel gets a final error frame, then closes.
	msg, ok := receive(t, first)
	require.True(t, ok)
	errFrame, isErr := msg.(ErrorFrame)
	require.True(t, isErr)
	assert.Equal(t, "error", errFrame.Type)
	_, open := <-first.send
	assert.False(t, open)

	// The survivors still receive.
	registry.SendToUser("farmer-1", "ping")
	_, ok = receive(t, second)
	assert.True(t, ok)
	_, ok = receive(t, third)
	assert.True(t, ok)
}

func TestRegistry_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	client := testClient(registry, "farmer-1", models.UserRoleFarmer, 1)
	registry.Register(client)

	registry.SendToUser("farmer-1", "first")
	registry.SendToUser("farmer-1", "second") // dropped, must not block

	msg, ok := receive(t, client)
	require.True(t, ok)
	assert.Equal(t, "first", msg)

	_, ok = receive(t, client)
	assert.False(t, ok)
}
