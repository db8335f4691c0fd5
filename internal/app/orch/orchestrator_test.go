package orch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkeye/mazetown/internal/app"
	"github.com/dkeye/mazetown/internal/core"
	"github.com/dkeye/mazetown/internal/core/mocks"
	"github.com/dkeye/mazetown/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

func TestOrchestrator(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

type OrchestratorTestSuite struct {
	suite.Suite

	ctx   context.Context
	ctrl  *gomock.Controller
	video *mocks.MockVideoClient
	board *mocks.MockLeaderboardStore
	orch  *Orchestrator
	town  *core.TownController
}

func (ts *OrchestratorTestSuite) SetupTest() {
	ts.ctx = context.Background()
	ts.ctrl = gomock.NewController(ts.T())
	ts.video = mocks.NewMockVideoClient(ts.ctrl)
	ts.board = mocks.NewMockLeaderboardStore(ts.ctrl)

	reg := app.NewRegistry(app.TownDefaults{
		Capacity:      3,
		InviteTimeout: time.Hour,
		Video:         ts.video,
		Leaderboard:   ts.board,
	})
	ts.orch = &Orchestrator{
		Registry:    reg,
		Leaderboard: ts.board,
		Limiter:     app.NewInviteRateLimiter(2, time.Hour),
		Policy:      app.SimplePolicy{},
	}
	town, err := reg.CreateTown("Lobby", true)
	require.NoError(ts.T(), err)
	ts.town = town
}

func (ts *OrchestratorTestSuite) join(name string) *core.PlayerSession {
	ts.video.EXPECT().AccessToken(gomock.Any(), ts.town.ID(), gomock.Any()).Return("video-"+name, nil)
	_, session, err := ts.orch.Join(ts.ctx, ts.town.ID(), name)
	require.NoError(ts.T(), err)
	return session
}

func (ts *OrchestratorTestSuite) TestJoin() {
	session := ts.join("alice")
	assert.Equal(ts.T(), "alice", session.Player().Username())
	assert.Equal(ts.T(), "video-alice", session.VideoToken())
	assert.True(ts.T(), ts.town.HasPlayer(session.Player().ID()))
}

func (ts *OrchestratorTestSuite) TestJoinErrors() {
	_, _, err := ts.orch.Join(ts.ctx, "missing", "alice")
	assert.ErrorIs(ts.T(), err, ErrTownNotFound)

	_, _, err = ts.orch.Join(ts.ctx, ts.town.ID(), "   ")
	assert.ErrorIs(ts.T(), err, domain.ErrUsernameEmpty)

	ts.video.EXPECT().AccessToken(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("provider down"))
	_, _, err = ts.orch.Join(ts.ctx, ts.town.ID(), "alice")
	assert.ErrorIs(ts.T(), err, core.ErrVideoProvisioning)
	assert.Zero(ts.T(), ts.town.Occupancy())
}

func (ts *OrchestratorTestSuite) TestJoinFullTown() {
	ts.join("a")
	ts.join("b")
	ts.join("c")
	_, _, err := ts.orch.Join(ts.ctx, ts.town.ID(), "d")
	assert.ErrorIs(ts.T(), err, core.ErrTownFull)
}

func (ts *OrchestratorTestSuite) TestAttachAndDetach() {
	session := ts.join("alice")

	_, _, err := ts.orch.Attach("missing", session.SessionToken())
	assert.ErrorIs(ts.T(), err, ErrTownNotFound)
	_, _, err = ts.orch.Attach(ts.town.ID(), "bogus")
	assert.ErrorIs(ts.T(), err, ErrSessionNotFound)

	town, got, err := ts.orch.Attach(ts.town.ID(), session.SessionToken())
	require.NoError(ts.T(), err)
	assert.Same(ts.T(), ts.town, town)
	assert.Same(ts.T(), session, got)

	ts.orch.Detach(town, session, nil)
	assert.False(ts.T(), ts.town.HasPlayer(session.Player().ID()))
	_, _, err = ts.orch.Attach(ts.town.ID(), session.SessionToken())
	assert.ErrorIs(ts.T(), err, ErrSessionNotFound)
}

func (ts *OrchestratorTestSuite) TestMove() {
	session := ts.join("alice")
	loc := domain.Location{X: 3, Y: 4, Rotation: domain.DirectionLeft, Moving: true}

	assert.True(ts.T(), ts.orch.Move(ts.town, session, loc))
	info, ok := ts.town.PlayerInfo(session.Player().ID())
	require.True(ts.T(), ok)
	assert.Equal(ts.T(), loc, info.Location)
}

func (ts *OrchestratorTestSuite) TestInviteIsRateLimited() {
	alice := ts.join("alice")
	bob := ts.join("bob")
	bobID := bob.Player().ID()

	ok, err := ts.orch.Invite(ts.town, alice, bobID)
	require.NoError(ts.T(), err)
	assert.True(ts.T(), ok)
	ok, err = ts.orch.Invite(ts.town, alice, bobID)
	require.NoError(ts.T(), err)
	assert.True(ts.T(), ok)

	ok, err = ts.orch.Invite(ts.town, alice, bobID)
	assert.ErrorIs(ts.T(), err, ErrRateLimited)
	assert.False(ts.T(), ok)

	ts.orch.Detach(ts.town, alice, nil)
	assert.Zero(ts.T(), ts.town.PendingInvites())
}

func (ts *OrchestratorTestSuite) TestRaceRoundTrip() {
	alice := ts.join("alice")
	bob := ts.join("bob")

	ok, err := ts.orch.Invite(ts.town, alice, bob.Player().ID())
	require.NoError(ts.T(), err)
	require.True(ts.T(), ok)

	ok, err = ts.orch.Respond(ts.town, bob, alice.Player().ID(), true)
	require.NoError(ts.T(), err)
	require.True(ts.T(), ok)
	assert.Equal(ts.T(), 1, ts.town.ActiveGames())

	ts.board.EXPECT().Insert(gomock.Any(), domain.CompletionTime{
		PlayerID: alice.Player().ID(),
		Username: "alice",
		Time:     5000,
	}).Return(nil)
	assert.True(ts.T(), ts.orch.Finish(ts.ctx, ts.town, alice, 5000, false))
	assert.True(ts.T(), ts.orch.Finish(ts.ctx, ts.town, bob, 0, true))
	assert.Zero(ts.T(), ts.town.ActiveGames())

	assert.False(ts.T(), ts.orch.Finish(ts.ctx, ts.town, alice, 10, false), "no game left to finish")
}

func (ts *OrchestratorTestSuite) TestRespondWithoutInvite() {
	alice := ts.join("alice")
	bob := ts.join("bob")

	ok, err := ts.orch.Respond(ts.town, bob, alice.Player().ID(), true)
	require.NoError(ts.T(), err)
	assert.False(ts.T(), ok)
}

func (ts *OrchestratorTestSuite) TestRaceSettings() {
	alice := ts.join("alice")
	bob := ts.join("bob")

	assert.True(ts.T(), ts.orch.RaceSettings(ts.town, bob, false))
	ok, err := ts.orch.Invite(ts.town, alice, bob.Player().ID())
	require.NoError(ts.T(), err)
	assert.False(ts.T(), ok)
}

func (ts *OrchestratorTestSuite) TestLeaderboard() {
	rows := []domain.CompletionTime{{PlayerID: "p1", Username: "alice", Time: 10}}
	ts.board.EXPECT().Query(gomock.Any()).Return(rows, nil)
	ts.board.EXPECT().Delete(gomock.Any(), "alice").Return(nil)

	got, err := ts.orch.QueryLeaderboard(ts.ctx)
	require.NoError(ts.T(), err)
	assert.Equal(ts.T(), rows, got)
	assert.NoError(ts.T(), ts.orch.DeleteLeaderboardEntry(ts.ctx, "alice"))
}
