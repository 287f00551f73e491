package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundctl/internal/playback/domain"
)

func TestRunRepository_SaveAndFind(t *testing.T) {
	repo := newTestDB(t).RunRepository()
	start := time.UnixMilli(1706000000123)

	run := domain.NewRun("intro.lua", "content", start)
	require.NoError(t, repo.Save(run))
	require.NotZero(t, run.ID())

	got, err := repo.FindByGUID(run.GUID())
	require.NoError(t, err)
	require.Equal(t, run.ID(), got.ID())
	require.Equal(t, "intro.lua", got.Script())
	require.Equal(t, "content", got.ContentDir())
	require.Equal(t, domain.RunRunning, got.State())
	require.True(t, start.Equal(got.StartedAt()))
	require.Nil(t, got.FinishedAt())

	end := start.Add(2 * time.Second)
	require.NoError(t, run.Finish(errors.New("boom"), end))
	require.NoError(t, repo.Save(run))

	got, err = repo.FindByGUID(run.GUID())
	require.NoError(t, err)
	require.Equal(t, domain.RunFailed, got.State())
	require.Equal(t, "boom", got.ErrorMessage())
	require.NotNil(t, got.FinishedAt())
	require.True(t, end.Equal(*got.FinishedAt()))
}

func TestRunRepository_NotFound(t *testing.T) {
	repo := newTestDB(t).RunRepository()

	_, err := repo.FindByGUID("nope")
	var notFound *domain.RunNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "nope", notFound.GUID)

	_, err = repo.Latest()
	require.ErrorAs(t, err, &notFound)
	require.Empty(t, notFound.GUID)

	ghost := domain.ReconstituteRun(99, "ghost", "x.lua", "", domain.RunFinished, "", time.Now(), nil)
	require.ErrorAs(t, repo.Save(ghost), &notFound)
}

func TestRunRepository_ListAndLatest(t *testing.T) {
	repo := newTestDB(t).RunRepository()
	base := time.UnixMilli(1706000000000)

	var runs []*domain.Run
	for i := 0; i < 3; i++ {
		r := domain.NewRun("s.lua", "", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Save(r))
		runs = append(runs, r)
	}
	require.NoError(t, runs[1].Finish(nil, base.Add(90*time.Second)))
	require.NoError(t, repo.Save(runs[1]))

	latest, err := repo.Latest()
	require.NoError(t, err)
	require.Equal(t, runs[2].GUID(), latest.GUID())

	all, err := repo.List(domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, runs[2].GUID(), all[0].GUID())
	require.Equal(t, runs[0].GUID(), all[2].GUID())

	limited, err := repo.List(domain.ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)

	finished, err := repo.List(domain.ListFilter{State: domain.RunFinished})
	require.NoError(t, err)
	require.Len(t, finished, 1)
	require.Equal(t, runs[1].GUID(), finished[0].GUID())
}
