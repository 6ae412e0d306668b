package usecase_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"account-reconciler/internal/domain"
	"account-reconciler/internal/usecase"
	mock_usecase "account-reconciler/internal/usecase/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ids(values ...domain.Identifier) domain.IdentifierSet {
	return domain.NewIdentifierSet(values...)
}

func TestReconciliationUseCase_Compare(t *testing.T) {
	readErr := &domain.ReadError{Path: "/data/broken.csv", Err: errors.New("bare \" in non-quoted field")}

	tests := []struct {
		name     string
		mainPath string
		refPaths []string
		mainSet  domain.IdentifierSet
		mainErr  error
		refSets  map[string]domain.IdentifierSet
		refErrs  map[string]error
		want     *domain.MatchResult
		wantErr  bool
	}{
		{
			name:     "matches per source and not found",
			mainPath: "/data/main.csv",
			refPaths: []string{"/data/active.csv", "/data/canceled.csv"},
			mainSet:  ids("A1", "A2", "A3"),
			refSets: map[string]domain.IdentifierSet{
				"/data/active.csv":   ids("A1", "A4"),
				"/data/canceled.csv": ids("A2"),
			},
			want: &domain.MatchResult{
				MatchesBySource: map[domain.Source][]domain.Identifier{
					"active.csv":   {"A1"},
					"canceled.csv": {"A2"},
				},
				NotFound: []domain.Identifier{"A3"},
				Skipped:  []domain.Source{},
			},
		},
		{
			name:     "sources without matches are omitted",
			mainPath: "/data/main.csv",
			refPaths: []string{"/data/active.csv", "/data/other.csv"},
			mainSet:  ids("A1", "A2"),
			refSets: map[string]domain.IdentifierSet{
				"/data/active.csv": ids("A1", "A2"),
				"/data/other.csv":  ids("Z9"),
			},
			want: &domain.MatchResult{
				MatchesBySource: map[domain.Source][]domain.Identifier{
					"active.csv": {"A1", "A2"},
				},
				NotFound: []domain.Identifier{},
				Skipped:  []domain.Source{},
			},
		},
		{
			name:     "overlapping sources each keep their matches",
			mainPath: "/data/main.csv",
			refPaths: []string{"/data/a.csv", "/data/b.csv"},
			mainSet:  ids("1", "2", "3", "10"),
			refSets: map[string]domain.IdentifierSet{
				"/data/a.csv": ids("10", "2", "1"),
				"/data/b.csv": ids("2", "10"),
			},
			want: &domain.MatchResult{
				MatchesBySource: map[domain.Source][]domain.Identifier{
					"a.csv": {"1", "10", "2"},
					"b.csv": {"10", "2"},
				},
				NotFound: []domain.Identifier{"3"},
				Skipped:  []domain.Source{},
			},
		},
		{
			name:     "unreadable reference file is skipped",
			mainPath: "/data/main.csv",
			refPaths: []string{"/data/r1.csv", "/data/broken.csv", "/data/r3.csv"},
			mainSet:  ids("A1", "A2", "A3"),
			refSets: map[string]domain.IdentifierSet{
				"/data/r1.csv": ids("A1"),
				"/data/r3.csv": ids("A3"),
			},
			refErrs: map[string]error{"/data/broken.csv": readErr},
			want: &domain.MatchResult{
				MatchesBySource: map[domain.Source][]domain.Identifier{
					"r1.csv": {"A1"},
					"r3.csv": {"A3"},
				},
				NotFound: []domain.Identifier{"A2"},
				Skipped:  []domain.Source{"broken.csv"},
			},
		},
		{
			name:     "no reference files",
			mainPath: "/data/main.csv",
			mainSet:  ids("B", "A"),
			want: &domain.MatchResult{
				MatchesBySource: map[domain.Source][]domain.Identifier{},
				NotFound:        []domain.Identifier{"A", "B"},
				Skipped:         []domain.Source{},
			},
		},
		{
			name:     "unreadable main file aborts",
			mainPath: "/data/main.csv",
			refPaths: []string{"/data/active.csv"},
			mainErr:  &domain.ReadError{Path: "/data/main.csv", Err: os.ErrNotExist},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mRepo := mock_usecase.NewMockAccountRepository(ctrl)
			mWriter := mock_usecase.NewMockResultWriter(ctrl)

			// Setup mock expectations
			calls := []*gomock.Call{
				mRepo.EXPECT().GetAccountIDs(gomock.Any(), tt.mainPath).Return(tt.mainSet, tt.mainErr),
			}
			if tt.mainErr == nil {
				for _, path := range tt.refPaths {
					calls = append(calls, mRepo.EXPECT().GetAccountIDs(gomock.Any(), path).Return(tt.refSets[path], tt.refErrs[path]))
				}
			}
			gomock.InOrder(calls...)

			uc := usecase.NewReconciliationUseCase(mRepo, mWriter, zap.NewNop())
			got, err := uc.Compare(context.Background(), tt.mainPath, tt.refPaths)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				var readErr *domain.ReadError
				assert.True(t, errors.As(err, &readErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReconciliationUseCase_Compare_NotFoundInvariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	mRepo := mock_usecase.NewMockAccountRepository(ctrl)

	main := ids("a", "b", "c", "d", "e", "f")
	refs := map[string]domain.IdentifierSet{
		"r1.csv": ids("a", "x"),
		"r2.csv": ids("c", "a"),
		"r3.csv": ids("y", "z"),
	}
	paths := []string{"r1.csv", "r2.csv", "r3.csv"}

	mRepo.EXPECT().GetAccountIDs(gomock.Any(), "main.csv").Return(main, nil)
	for _, p := range paths {
		mRepo.EXPECT().GetAccountIDs(gomock.Any(), p).Return(refs[p], nil)
	}

	uc := usecase.NewReconciliationUseCase(mRepo, nil, nil)
	got, err := uc.Compare(context.Background(), "main.csv", paths)
	require.NoError(t, err)

	for _, id := range got.NotFound {
		assert.True(t, main.Contains(id))
		for _, ref := range refs {
			assert.False(t, ref.Contains(id), "not-found id %s present in a reference", id)
		}
	}

	matched := domain.NewIdentifierSet()
	for _, list := range got.MatchesBySource {
		assert.IsIncreasing(t, list)
		matched.Union(domain.NewIdentifierSet(list...))
	}
	assert.IsIncreasing(t, got.NotFound)
	assert.Equal(t, main.Len(), matched.Len()+len(got.NotFound))
}

func TestReconciliationUseCase_Compare_LogsSkippedReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	mRepo := mock_usecase.NewMockAccountRepository(ctrl)
	core, logs := observer.New(zapcore.WarnLevel)

	cause := &domain.ReadError{Path: "/data/broken.csv", Err: errors.New("boom")}
	mRepo.EXPECT().GetAccountIDs(gomock.Any(), "/data/main.csv").Return(ids("A1"), nil)
	mRepo.EXPECT().GetAccountIDs(gomock.Any(), "/data/broken.csv").Return(domain.IdentifierSet{}, cause)

	uc := usecase.NewReconciliationUseCase(mRepo, nil, zap.New(core))
	got, err := uc.Compare(context.Background(), "/data/main.csv", []string{"/data/broken.csv"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Identifier{"A1"}, got.NotFound)

	entries := logs.FilterMessage("Skipping reference file").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "/data/broken.csv", entries[0].ContextMap()["path"])
}

func TestReconciliationUseCase_Run(t *testing.T) {
	t.Run("writes results and summarizes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mRepo := mock_usecase.NewMockAccountRepository(ctrl)
		mWriter := mock_usecase.NewMockResultWriter(ctrl)

		mRepo.EXPECT().GetAccountIDs(gomock.Any(), "main.csv").Return(ids("A1", "A2", "A3"), nil)
		mRepo.EXPECT().GetAccountIDs(gomock.Any(), "dir/active.csv").Return(ids("A1", "A2"), nil)
		mWriter.EXPECT().WriteResults(
			gomock.Any(),
			map[domain.Source][]domain.Identifier{"active.csv": {"A1", "A2"}},
			[]domain.Identifier{"A3"},
			"out",
		).Return(nil)

		uc := usecase.NewReconciliationUseCase(mRepo, mWriter, zap.NewNop())
		got, err := uc.Run(context.Background(), "main.csv", []string{"dir/active.csv"}, "out")
		require.NoError(t, err)

		assert.Equal(t, &domain.Summary{
			MainAccounts:    3,
			MatchesBySource: map[domain.Source]int{"active.csv": 2},
			NotFound:        1,
			SkippedSources:  []domain.Source{},
			OutputDir:       "out",
		}, got)
	})

	t.Run("main read failure writes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mRepo := mock_usecase.NewMockAccountRepository(ctrl)
		mWriter := mock_usecase.NewMockResultWriter(ctrl)

		mRepo.EXPECT().GetAccountIDs(gomock.Any(), "main.csv").
			Return(domain.IdentifierSet{}, &domain.ReadError{Path: "main.csv", Err: os.ErrNotExist})

		uc := usecase.NewReconciliationUseCase(mRepo, mWriter, zap.NewNop())
		got, err := uc.Run(context.Background(), "main.csv", []string{"active.csv"}, "out")
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("write failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mRepo := mock_usecase.NewMockAccountRepository(ctrl)
		mWriter := mock_usecase.NewMockResultWriter(ctrl)

		writeErr := &domain.WriteError{Path: "out", Err: os.ErrPermission}
		mRepo.EXPECT().GetAccountIDs(gomock.Any(), "main.csv").Return(ids("A1"), nil)
		mWriter.EXPECT().WriteResults(gomock.Any(), gomock.Any(), gomock.Any(), "out").Return(writeErr)

		uc := usecase.NewReconciliationUseCase(mRepo, mWriter, zap.NewNop())
		got, err := uc.Run(context.Background(), "main.csv", nil, "out")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, os.ErrPermission)
		var target *domain.WriteError
		assert.ErrorAs(t, err, &target)
	})
}
