package job

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packops/pkg/backend"
	"github.com/arthur-debert/packops/pkg/config"
	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/progress"
	"github.com/arthur-debert/packops/pkg/storage"
	"github.com/arthur-debert/packops/pkg/testutil"
	"github.com/arthur-debert/packops/pkg/types"
)

type recordingSink struct {
	fractions []float64
	statuses  []string
}

func (r *recordingSink) SetProgress(f float64) { r.fractions = append(r.fractions, f) }
func (r *recordingSink) SetStatus(s string)    { r.statuses = append(r.statuses, s) }

func install(names ...string) types.Entry {
	items := make([]types.PackageItem, 0, len(names))
	for _, n := range names {
		items = append(items, types.Simple(n))
	}
	return types.Entry{Actions: []types.Action{{Tag: types.ActionInstall, Items: items}}}
}

type fixture struct {
	job     *Job
	backend *testutil.MockBackend
	sink    *recordingSink
	store   *storage.Store
}

func newFixture(cfg *config.Config) *fixture {
	b := &testutil.MockBackend{}
	sink := &recordingSink{}
	store := storage.New()
	store.Set(storage.KeyOnlineInstall, true)
	store.Set(storage.KeyHasInternet, true)

	return &fixture{
		job: &Job{
			Config:   cfg,
			Storage:  store,
			Progress: progress.New(sink),
			NewBackend: func(id string, opts backend.Options) (backend.Backend, error) {
				if id != "mock" {
					return backend.New(id, opts)
				}
				return b, nil
			},
		},
		backend: b,
		sink:    sink,
		store:   store,
	}
}

func TestRun_OfflineInstallIsSkipped(t *testing.T) {
	f := newFixture(&config.Config{Backend: "no-such-backend"})
	f.store.Set(storage.KeyOnlineInstall, false)

	failure, err := f.job.Run(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, failure)
	assert.Empty(t, f.sink.fractions)
}

func TestRun_BadBackend(t *testing.T) {
	f := newFixture(&config.Config{Backend: "zypper"})

	failure, err := f.job.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, failure)
	assert.Equal(t, "Bad backend", failure.Title)
	assert.Equal(t, `backend="zypper"`, failure.Detail)
}

func TestRun_SkipIfNoInternet(t *testing.T) {
	f := newFixture(&config.Config{
		Backend:          "mock",
		SkipIfNoInternet: true,
		UpdateDB:         true,
		Operations:       []types.Entry{install("a")},
	})
	f.store.Set(storage.KeyHasInternet, false)

	failure, err := f.job.Run(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, failure)
	f.backend.AssertNotCalled(t, "UpdateDB")
	f.backend.AssertNotCalled(t, "Install", mock.Anything, mock.Anything)
}

func TestRun_UpdatesNeedInternet(t *testing.T) {
	f := newFixture(&config.Config{Backend: "mock", UpdateDB: true, UpdateSystem: true})
	f.store.Set(storage.KeyHasInternet, false)

	_, err := f.job.Run(context.Background())
	assert.NoError(t, err)
	f.backend.AssertNotCalled(t, "UpdateDB")
	f.backend.AssertNotCalled(t, "UpdateSystem")
}

func TestRun_UpdatesBeforeOperations(t *testing.T) {
	f := newFixture(&config.Config{
		Backend:      "mock",
		UpdateDB:     true,
		UpdateSystem: true,
		Operations:   []types.Entry{install("a")},
	})

	var order []string
	f.backend.On("UpdateDB").Run(func(mock.Arguments) { order = append(order, "db") }).Return(nil)
	f.backend.On("UpdateSystem").Run(func(mock.Arguments) { order = append(order, "system") }).Return(nil)
	f.backend.On("Install", []string{"a"}, false).Run(func(mock.Arguments) { order = append(order, "a") }).Return(nil)

	failure, err := f.job.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, failure)
	assert.Equal(t, []string{"db", "system", "a"}, order)
	assert.Equal(t, StatusUpdatingDB, f.sink.statuses[0])
	assert.Equal(t, StatusUpdatingSystem, f.sink.statuses[1])
}

func TestRun_UpdateFailureAborts(t *testing.T) {
	f := newFixture(&config.Config{Backend: "mock", UpdateDB: true, Operations: []types.Entry{install("a")}})
	f.backend.On("UpdateDB").Return(testutil.CommandFailed("pacman -Sy"))

	_, err := f.job.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	f.backend.AssertNotCalled(t, "Install", mock.Anything, mock.Anything)
}

func TestRun_ZeroUnitsIsSuccessWithoutReports(t *testing.T) {
	f := newFixture(&config.Config{Backend: "mock", Operations: []types.Entry{
		{Actions: []types.Action{{Tag: types.ActionSource, Source: "netinstall"}}},
	}})

	failure, err := f.job.Run(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, failure)
	assert.Empty(t, f.sink.fractions)
}

func TestRun_ConfiguredThenContributedOperations(t *testing.T) {
	f := newFixture(&config.Config{Backend: "mock", Operations: []types.Entry{install("configured")}})
	f.store.Set(storage.KeyPackageOperations, []types.Entry{install("contributed")})

	var order []string
	f.backend.On("Install", mock.Anything, false).Run(func(args mock.Arguments) {
		order = append(order, args.Get(0).([]string)[0])
	}).Return(nil)

	_, err := f.job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"configured", "contributed"}, order)

	require.NotEmpty(t, f.sink.fractions)
	assert.Equal(t, 0.0, f.sink.fractions[0])
	assert.Equal(t, 1.0, f.sink.fractions[len(f.sink.fractions)-1])
	assert.Equal(t, 2, f.job.Progress.Completed)
}

func TestRun_StrictFailureAbortsRun(t *testing.T) {
	f := newFixture(&config.Config{Backend: "mock", Operations: []types.Entry{install("a"), install("b")}})
	f.backend.On("Install", []string{"a"}, false).Return(testutil.CommandFailed("pacman -S a"))

	_, err := f.job.Run(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandFailed))
	f.backend.AssertNotCalled(t, "Install", []string{"b"}, false)
	assert.NotEqual(t, 1.0, f.sink.fractions[len(f.sink.fractions)-1])
}

func TestRun_LocaleFromStorage(t *testing.T) {
	f := newFixture(&config.Config{Backend: "mock", Operations: []types.Entry{install("hunspell-$LOCALE")}})
	f.store.Set(storage.KeyLocale, "fr")
	f.backend.On("Install", []string{"hunspell-fr"}, false).Return(nil)

	_, err := f.job.Run(context.Background())
	require.NoError(t, err)
	f.backend.AssertExpectations(t)
}

func TestRun_RealBackendThroughRegistry(t *testing.T) {
	r := &testutil.MockRunner{}
	r.On("Run", mock.Anything).Return(nil)

	f := newFixture(&config.Config{Backend: backend.PacmanName, Operations: []types.Entry{install("vim")}})
	f.job.Backend = backend.Options{Runner: r}
	rec := &testutil.MockRecorder{}
	f.job.Recorder = rec

	_, err := f.job.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"pacman", "-S", "--noconfirm", "--needed", "vim"}}, r.Argvs())
	require.Len(t, rec.Outcomes, 1)
	assert.Equal(t, "pacman", rec.Outcomes[0].Backend)
	assert.Equal(t, types.StatusInstalled, rec.Outcomes[0].Status)
}

func TestFailure_String(t *testing.T) {
	f := &Failure{Title: "Bad backend", Detail: `backend="x"`}
	assert.Equal(t, `Bad backend: backend="x"`, f.String())
}
