package intake

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limonericx/community-bot/internal/domain"
	"github.com/limonericx/community-bot/pkg/util"
)

func supportInput() SubmitInput {
	category, _ := domain.ClassifyCategory("bug")
	return SubmitInput{
		Flow:        domain.FlowSupport,
		Requester:   domain.Requester{ID: "u1", Username: "steve", Mention: "<@u1>"},
		GuildID:     "g1",
		Identifier:  "steve",
		Description: "на спавне пропал сундук",
		Category:    &category,
	}
}

func applicationInput(flow domain.Flow) SubmitInput {
	return SubmitInput{
		Flow:        flow,
		Requester:   domain.Requester{ID: "u1", Username: "steve"},
		GuildID:     "g1",
		Identifier:  "steve",
		Description: "хочу помогать серверу",
		Extra:       "играю два года",
		Age:         "18",
	}
}

func TestSubmitSupport(t *testing.T) {
	req, err := supportInput().Submit()
	require.NoError(t, err)

	assert.Equal(t, domain.FlowSupport, req.Flow)
	assert.Equal(t, "steve", req.Identifier)
	require.NotNil(t, req.Category)
	assert.Equal(t, "bug", req.Category.Value)
	assert.Len(t, req.ID, 8)
	assert.Equal(t, strings.ToUpper(req.ID), req.ID)
}

func TestSubmitTrimsFields(t *testing.T) {
	in := supportInput()
	in.Identifier = "  steve  "
	in.Description = " помогите \n"

	req, err := in.Submit()
	require.NoError(t, err)
	assert.Equal(t, "steve", req.Identifier)
	assert.Equal(t, "помогите", req.Description)
}

func TestSubmitRequestIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		req, err := supportInput().Submit()
		require.NoError(t, err)
		assert.False(t, seen[req.ID])
		seen[req.ID] = true
	}
}

func TestSubmitFieldBounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"empty identifier", func(in *SubmitInput) { in.Identifier = "   " }},
		{"identifier too long", func(in *SubmitInput) { in.Identifier = strings.Repeat("а", GameHandleMaxLen+1) }},
		{"empty description", func(in *SubmitInput) { in.Description = "" }},
		{"description too long", func(in *SubmitInput) { in.Description = strings.Repeat("б", DescriptionMaxLen+1) }},
		{"missing category", func(in *SubmitInput) { in.Category = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := supportInput()
			tt.mutate(&in)

			req, err := in.Submit()
			assert.Nil(t, req)
			assert.True(t, util.IsCode(err, util.CodeValidationFailed))
		})
	}
}

func TestSubmitBoundaryLengthsAccepted(t *testing.T) {
	in := supportInput()
	in.Identifier = strings.Repeat("а", GameHandleMaxLen)
	in.Description = strings.Repeat("б", DescriptionMaxLen)

	_, err := in.Submit()
	require.NoError(t, err)
}

func TestSubmitExtraBound(t *testing.T) {
	in := applicationInput(domain.FlowMinecraftAdmin)
	in.Extra = strings.Repeat("в", ExtraMaxLen+1)

	_, err := in.Submit()
	assert.True(t, util.IsCode(err, util.CodeValidationFailed))
}

func TestSubmitIdentifierBoundPerFlow(t *testing.T) {
	// A Discord handle longer than a Minecraft nick is still valid for
	// the Discord flow.
	handle := strings.Repeat("x", GameHandleMaxLen+5)

	in := applicationInput(domain.FlowDiscordAdmin)
	in.Identifier = handle
	_, err := in.Submit()
	require.NoError(t, err)

	in = applicationInput(domain.FlowMinecraftAdmin)
	in.Identifier = handle
	_, err = in.Submit()
	assert.True(t, util.IsCode(err, util.CodeValidationFailed))
}

func TestSubmitAgeGates(t *testing.T) {
	tests := []struct {
		name string
		flow domain.Flow
		age  string
		ok   bool
	}{
		{"minecraft at threshold", domain.FlowMinecraftAdmin, "16", true},
		{"minecraft below threshold", domain.FlowMinecraftAdmin, "15", false},
		{"discord at threshold", domain.FlowDiscordAdmin, "15", true},
		{"discord below threshold", domain.FlowDiscordAdmin, "14", false},
		{"adult", domain.FlowMinecraftAdmin, "30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := applicationInput(tt.flow)
			in.Age = tt.age

			req, err := in.Submit()
			if tt.ok {
				require.NoError(t, err)
				assert.NotZero(t, req.Age)
			} else {
				assert.True(t, util.IsCode(err, util.CodeValidationFailed))
			}
		})
	}
}

func TestSubmitAgeNotNumeric(t *testing.T) {
	for _, raw := range []string{"", "abc", "16 лет", "-3", "1.5"} {
		in := applicationInput(domain.FlowMinecraftAdmin)
		in.Age = raw

		_, err := in.Submit()
		require.Error(t, err, "age %q", raw)
		assert.True(t, util.IsCode(err, util.CodeValidationFailed))
		// The formatting rejection is distinct from the threshold one.
		assert.Contains(t, util.ToDomainError(err).Notice(), "числом")
	}
}

func TestSubmitAgeWhitespaceTolerated(t *testing.T) {
	in := applicationInput(domain.FlowMinecraftAdmin)
	in.Age = " 17 "

	req, err := in.Submit()
	require.NoError(t, err)
	assert.Equal(t, 17, req.Age)
}
