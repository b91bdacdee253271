package service

import (
	"context"
	"io"
	"sync"

	"github.com/rocketscienceinc/fifteen-backend/internal/entity"
)

// fakeParticipant feeds a fixed script of input lines and records every
// line sent to it. When the script runs out it behaves like a dropped
// connection.
type fakeParticipant struct {
	id string

	mu     sync.Mutex
	script []string
	sent   []string
	closed bool
}

func newFakeParticipant(id string, script ...string) *fakeParticipant {
	return &fakeParticipant{id: id, script: script}
}

func (that *fakeParticipant) ID() string {
	return that.id
}

func (that *fakeParticipant) SendLine(line string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return io.ErrClosedPipe
	}

	that.sent = append(that.sent, line)

	return nil
}

func (that *fakeParticipant) ReadLine() (string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed || len(that.script) == 0 {
		return "", io.EOF
	}

	line := that.script[0]
	that.script = that.script[1:]

	return line, nil
}

func (that *fakeParticipant) Close() error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true

	return nil
}

func (that *fakeParticipant) sentLines() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	lines := make([]string, len(that.sent))
	copy(lines, that.sent)

	return lines
}

func (that *fakeParticipant) isClosed() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.closed
}

type fakeGameRepo struct {
	mu      sync.Mutex
	saved   map[string]*entity.Game
	deleted []string
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{saved: make(map[string]*entity.Game)}
}

func (that *fakeGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.saved[game.ID] = game

	return nil
}

func (that *fakeGameRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.saved, id)
	that.deleted = append(that.deleted, id)

	return nil
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	saved   map[string]*entity.Player
	deleted []string
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{saved: make(map[string]*entity.Player)}
}

func (that *fakePlayerRepo) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.saved[player.ID] = player

	return nil
}

func (that *fakePlayerRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.saved, id)
	that.deleted = append(that.deleted, id)

	return nil
}

type fakeArchiveRepo struct {
	mu       sync.Mutex
	recorded []*entity.Game
}

func newFakeArchiveRepo() *fakeArchiveRepo {
	return &fakeArchiveRepo{}
}

func (that *fakeArchiveRepo) RecordFinished(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.recorded = append(that.recorded, game)

	return nil
}

func (that *fakeArchiveRepo) recordedGames() []*entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	games := make([]*entity.Game, len(that.recorded))
	copy(games, that.recorded)

	return games
}
