package workspace

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/limonericx/community-bot/internal/config"
	"github.com/limonericx/community-bot/internal/domain"
	"github.com/limonericx/community-bot/internal/platform"
	"github.com/limonericx/community-bot/internal/platform/platformtest"
	"github.com/limonericx/community-bot/pkg/util"
)

func testRequest() *domain.Request {
	return &domain.Request{
		ID:          "A1B2C3D4",
		Flow:        domain.FlowSupport,
		Requester:   domain.Requester{ID: "u1", Username: "Steve"},
		Identifier:  "steve_mc",
		Description: "пропал дом",
		GuildID:     "g1",
		CreatedAt:   time.Now(),
	}
}

func TestProvisionCreatesCategoryOnFirstNeed(t *testing.T) {
	fake := platformtest.NewFake()
	p := NewProvisioner(fake, config.DiscordConfig{ReviewerRoleID: "mod"}, zap.NewNop())

	ws, err := p.Provision(context.Background(), testRequest())
	require.NoError(t, err)

	catID, ok := fake.Categories[config.TicketsCategoryName]
	require.True(t, ok)
	assert.Equal(t, catID, fake.Channels[ws.ChannelID].ParentID)
}

func TestProvisionReusesExistingCategory(t *testing.T) {
	fake := platformtest.NewFake()
	fake.Categories[config.TicketsCategoryName] = "cat-existing"
	p := NewProvisioner(fake, config.DiscordConfig{ReviewerRoleID: "mod"}, zap.NewNop())

	ws, err := p.Provision(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "cat-existing", fake.Channels[ws.ChannelID].ParentID)
}

func TestProvisionGrants(t *testing.T) {
	fake := platformtest.NewFake()
	p := NewProvisioner(fake, config.DiscordConfig{ReviewerRoleID: "mod"}, zap.NewNop())

	ws, err := p.Provision(context.Background(), testRequest())
	require.NoError(t, err)

	grants := fake.Channels[ws.ChannelID].Grants
	require.Len(t, grants, 3)

	assert.Equal(t, platform.GrantEveryone, grants[0].Kind)
	assert.NotZero(t, grants[0].Deny&platform.PermView)

	assert.Equal(t, platform.GrantMember, grants[1].Kind)
	assert.Equal(t, "u1", grants[1].ID)
	assert.NotZero(t, grants[1].Allow&platform.PermSend)

	assert.Equal(t, platform.GrantRole, grants[2].Kind)
	assert.Equal(t, "mod", grants[2].ID)
	assert.NotZero(t, grants[2].Allow&platform.PermManageChannel)
}

func TestProvisionChannelNameAndTopic(t *testing.T) {
	fake := platformtest.NewFake()
	p := NewProvisioner(fake, config.DiscordConfig{ReviewerRoleID: "mod"}, zap.NewNop())

	ws, err := p.Provision(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "тикет-steve-a1b2c3d4", ws.Name)
	assert.Contains(t, fake.Channels[ws.ChannelID].Topic, "steve_mc")
}

func TestProvisionCreateChannelFailure(t *testing.T) {
	fake := platformtest.NewFake()
	fake.FailWith("CreateChannel", errors.New("boom"))
	p := NewProvisioner(fake, config.DiscordConfig{ReviewerRoleID: "mod"}, zap.NewNop())

	ws, err := p.Provision(context.Background(), testRequest())
	assert.Nil(t, ws)
	assert.True(t, util.IsCode(err, util.CodeResourceUnavailable))
}

func TestDeriveChannelNameTruncation(t *testing.T) {
	name := DeriveChannelName(strings.Repeat("игрок", 20), "A1B2C3D4")
	assert.Equal(t, MaxChannelNameLen, len([]rune(name)))
	assert.True(t, strings.HasPrefix(name, "тикет-игрок"))
}

func TestDeriveChannelNameLowercases(t *testing.T) {
	assert.Equal(t, "тикет-steve-a1b2c3d4", DeriveChannelName("Steve", "A1B2C3D4"))
}
