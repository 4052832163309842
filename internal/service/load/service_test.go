package load_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"freight-broker-service/internal/apperr"
	"freight-broker-service/internal/domain"
	"freight-broker-service/internal/ports/brokertx"
	"freight-broker-service/internal/service/load"
	testlog "freight-broker-service/internal/testutil"
)

func newCtrl(t *testing.T) *gomock.Controller {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return ctrl
}

func testLogger() *testlog.Recorder { return testlog.New() }

func int64ptr(v int64) *int64 { return &v }

// fakeTx is a hand stub of the transactional repository; unset
// operations fail loudly so a test cannot silently hit them.
type fakeTx struct {
	getForUpdateFn     func(ctx context.Context, loadID int64) (*domain.Load, error)
	postLoadFn         func(ctx context.Context, loadID int64) (bool, error)
	updateStateFn      func(ctx context.Context, loadID int64, from, to domain.LoadState) (bool, error)
	completeFn         func(ctx context.Context, loadID int64, from domain.LoadState) (bool, error)
	appendLogFn        func(ctx context.Context, loadID int64, message string) error
	releaseTruckFn     func(ctx context.Context, loadID int64) error
	markTruckOnRouteFn func(ctx context.Context, loadID int64) error
}

func (f *fakeTx) GetLoadForUpdate(ctx context.Context, loadID int64) (*domain.Load, error) {
	if f.getForUpdateFn == nil {
		panic("GetLoadForUpdate not stubbed")
	}
	return f.getForUpdateFn(ctx, loadID)
}

func (f *fakeTx) PostLoad(ctx context.Context, loadID int64) (bool, error) {
	if f.postLoadFn == nil {
		panic("PostLoad not stubbed")
	}
	return f.postLoadFn(ctx, loadID)
}

func (f *fakeTx) AssignLoad(context.Context, int64, int64) (bool, error) {
	panic("AssignLoad not used in load service tests")
}

func (f *fakeTx) UpdateLoadState(ctx context.Context, loadID int64, from, to domain.LoadState) (bool, error) {
	if f.updateStateFn == nil {
		panic("UpdateLoadState not stubbed")
	}
	return f.updateStateFn(ctx, loadID, from, to)
}

func (f *fakeTx) CompleteLoad(ctx context.Context, loadID int64, from domain.LoadState) (bool, error) {
	if f.completeFn == nil {
		panic("CompleteLoad not stubbed")
	}
	return f.completeFn(ctx, loadID, from)
}

func (f *fakeTx) AppendLog(ctx context.Context, loadID int64, message string) error {
	if f.appendLogFn == nil {
		return nil
	}
	return f.appendLogFn(ctx, loadID, message)
}

func (f *fakeTx) ReserveTruck(context.Context, int64, int64) (bool, error) {
	panic("ReserveTruck not used in load service tests")
}

func (f *fakeTx) ReleaseTruckByLoad(ctx context.Context, loadID int64) error {
	if f.releaseTruckFn == nil {
		return nil
	}
	return f.releaseTruckFn(ctx, loadID)
}

func (f *fakeTx) MarkTruckOnRoute(ctx context.Context, loadID int64) error {
	if f.markTruckOnRouteFn == nil {
		return nil
	}
	return f.markTruckOnRouteFn(ctx, loadID)
}

func (f *fakeTx) ActivateTruck(context.Context, int64, int64) (bool, error) {
	panic("ActivateTruck not used in load service tests")
}

type stubRunner struct {
	tx     *fakeTx
	txErr  error
	called int
}

func (s *stubRunner) WithTx(ctx context.Context, fn func(tx brokertx.Repository) error) error {
	s.called++
	if s.txErr != nil {
		return s.txErr
	}
	return fn(s.tx)
}

type noopRunner struct{}

func (noopRunner) WithTx(context.Context, func(tx brokertx.Repository) error) error {
	panic("WithTx must not be called in this test")
}

func newService(repo *MockloadRepository, runner brokertx.Runner, src load.AddressSource) *load.Service {
	return load.NewService(repo, runner, src, time.Second, testLogger().Logger())
}

func validLoad() *domain.Load {
	return &domain.Load{
		Name:       "Pallets",
		Dimensions: domain.Dimensions{Width: 100, Length: 120, Height: 90},
		Payload:    800,
		PickUpAddress: domain.Address{
			City: "Kyiv", Street: "street 1", Zip: "01001",
		},
		DeliveryAddress: domain.Address{
			City: "Lviv", Street: "street 2", Zip: "79000",
		},
	}
}

func TestService_Create_OK(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *domain.Load) (int64, error) {
			require.Equal(t, int64(7), l.CreatedBy)
			require.Equal(t, domain.LoadStatusNew, l.Status)
			require.Equal(t, domain.LoadStateNone, l.State)
			require.Nil(t, l.AssignedTo)
			return 42, nil
		})

	svc := newService(repo, noopRunner{}, nil)

	id, err := svc.Create(context.Background(), 7, validLoad())
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestService_Create_DefaultName(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *domain.Load) (int64, error) {
			require.Equal(t, "Load", l.Name)
			return 1, nil
		})

	svc := newService(repo, noopRunner{}, nil)

	l := validLoad()
	l.Name = "   "
	_, err := svc.Create(context.Background(), 7, l)
	require.NoError(t, err)
}

func TestService_Create_FillsAddressesFromProfile(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	pickUp := domain.Address{City: "Kyiv", Street: "street 33", Zip: "07249"}
	delivery := domain.Address{City: "Kyiv", Street: "street 32", Zip: "07258"}

	src := NewMockAddressSource(ctrl)
	src.EXPECT().
		DefaultAddresses(gomock.Any(), int64(7)).
		Return(pickUp, delivery, nil)

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *domain.Load) (int64, error) {
			require.Equal(t, pickUp, l.PickUpAddress)
			require.Equal(t, delivery, l.DeliveryAddress)
			return 1, nil
		})

	svc := newService(repo, noopRunner{}, src)

	l := validLoad()
	l.PickUpAddress = domain.Address{}
	l.DeliveryAddress = domain.Address{}
	_, err := svc.Create(context.Background(), 7, l)
	require.NoError(t, err)
}

func TestService_Create_InvalidSpec(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	svc := newService(NewMockloadRepository(ctrl), noopRunner{}, nil)

	l := validLoad()
	l.Payload = 0
	_, err := svc.Create(context.Background(), 7, l)
	require.ErrorIs(t, err, apperr.ErrInvalidLoadSpec)

	l = validLoad()
	l.Dimensions.Height = -5
	_, err = svc.Create(context.Background(), 7, l)
	require.ErrorIs(t, err, apperr.ErrInvalidLoadSpec)

	_, err = svc.Create(context.Background(), 7, nil)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_GetForUser_Authorization(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	stored := &domain.Load{ID: 5, CreatedBy: 7, AssignedTo: int64ptr(11), Status: domain.LoadStatusAssigned}

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), int64(5)).Return(stored, nil).Times(3)

	svc := newService(repo, noopRunner{}, nil)

	got, err := svc.GetForUser(context.Background(), 7, domain.RoleShipper, 5)
	require.NoError(t, err)
	require.Equal(t, stored, got)

	got, err = svc.GetForUser(context.Background(), 11, domain.RoleDriver, 5)
	require.NoError(t, err)
	require.Equal(t, stored, got)

	_, err = svc.GetForUser(context.Background(), 99, domain.RoleShipper, 5)
	require.ErrorIs(t, err, apperr.ErrNotAuthorized)
}

func TestService_GetForUser_NotFound(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), int64(5)).Return(nil, nil)

	svc := newService(repo, noopRunner{}, nil)

	_, err := svc.GetForUser(context.Background(), 7, domain.RoleShipper, 5)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_ListForUser_DriverActiveLoad(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	active := &domain.Load{ID: 3, AssignedTo: int64ptr(11), Status: domain.LoadStatusAssigned}

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().ActiveByDriver(gomock.Any(), int64(11)).Return(active, nil)

	svc := newService(repo, noopRunner{}, nil)

	got, err := svc.ListForUser(context.Background(), 11, domain.RoleDriver, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int64(3), got[0].ID)
}

func TestService_ListForUser_DriverNoActiveLoad(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().ActiveByDriver(gomock.Any(), int64(11)).Return(nil, nil)

	svc := newService(repo, noopRunner{}, nil)

	got, err := svc.ListForUser(context.Background(), 11, domain.RoleDriver, nil, nil, nil)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestService_ListForUser_InvalidStatusFilter(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	svc := newService(NewMockloadRepository(ctrl), noopRunner{}, nil)

	bad := domain.LoadStatus("PENDING")
	_, err := svc.ListForUser(context.Background(), 7, domain.RoleShipper, &bad, nil, nil)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_UpdatePartial_OnlyWhileNew(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	posted := &domain.Load{ID: 5, CreatedBy: 7, Status: domain.LoadStatusPosted}

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), int64(5)).Return(posted, nil)

	svc := newService(repo, noopRunner{}, nil)

	name := "renamed"
	err := svc.UpdatePartial(context.Background(), 7, domain.PartialLoadUpdate{ID: 5, Name: &name})
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestService_UpdatePartial_LostRace(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	stored := &domain.Load{ID: 5, CreatedBy: 7, Status: domain.LoadStatusNew}

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), int64(5)).Return(stored, nil)
	// the load left NEW between the read and the conditional update
	repo.EXPECT().UpdatePartial(gomock.Any(), gomock.Any()).Return(false, nil)

	svc := newService(repo, noopRunner{}, nil)

	name := "renamed"
	err := svc.UpdatePartial(context.Background(), 7, domain.PartialLoadUpdate{ID: 5, Name: &name})
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestService_UpdatePartial_NotOwner(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	stored := &domain.Load{ID: 5, CreatedBy: 7, Status: domain.LoadStatusNew}

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), int64(5)).Return(stored, nil)

	svc := newService(repo, noopRunner{}, nil)

	name := "renamed"
	err := svc.UpdatePartial(context.Background(), 99, domain.PartialLoadUpdate{ID: 5, Name: &name})
	require.ErrorIs(t, err, apperr.ErrNotAuthorized)
}

func TestService_Delete_AssignedLoadRejected(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	stored := &domain.Load{ID: 5, CreatedBy: 7, Status: domain.LoadStatusAssigned}

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), int64(5)).Return(stored, nil)

	svc := newService(repo, noopRunner{}, nil)

	err := svc.Delete(context.Background(), 7, 5)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestService_Delete_OK(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	stored := &domain.Load{ID: 5, CreatedBy: 7, Status: domain.LoadStatusPosted}

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), int64(5)).Return(stored, nil)
	repo.EXPECT().Delete(gomock.Any(), int64(5)).Return(true, nil)

	svc := newService(repo, noopRunner{}, nil)

	require.NoError(t, svc.Delete(context.Background(), 7, 5))
}

func TestService_Post_OK(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	stored := &domain.Load{ID: 5, CreatedBy: 7, Status: domain.LoadStatusNew}

	var logged []string
	tx := &fakeTx{
		getForUpdateFn: func(_ context.Context, loadID int64) (*domain.Load, error) {
			require.Equal(t, int64(5), loadID)
			return stored, nil
		},
		postLoadFn: func(_ context.Context, loadID int64) (bool, error) {
			return true, nil
		},
		appendLogFn: func(_ context.Context, _ int64, message string) error {
			logged = append(logged, message)
			return nil
		},
	}

	svc := newService(NewMockloadRepository(ctrl), &stubRunner{tx: tx}, nil)

	require.NoError(t, svc.Post(context.Background(), 7, 5))
	require.Equal(t, []string{"Load posted"}, logged)
}

func TestService_Post_NotNew(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	stored := &domain.Load{ID: 5, CreatedBy: 7, Status: domain.LoadStatusPosted}

	tx := &fakeTx{
		getForUpdateFn: func(context.Context, int64) (*domain.Load, error) { return stored, nil },
	}
	svc := newService(NewMockloadRepository(ctrl), &stubRunner{tx: tx}, nil)

	err := svc.Post(context.Background(), 7, 5)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestService_Post_NotOwner(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	stored := &domain.Load{ID: 5, CreatedBy: 7, Status: domain.LoadStatusNew}

	tx := &fakeTx{
		getForUpdateFn: func(context.Context, int64) (*domain.Load, error) { return stored, nil },
	}
	svc := newService(NewMockloadRepository(ctrl), &stubRunner{tx: tx}, nil)

	err := svc.Post(context.Background(), 99, 5)
	require.ErrorIs(t, err, apperr.ErrNotAuthorized)
}

func assignedLoad(state domain.LoadState) *domain.Load {
	return &domain.Load{
		ID:         5,
		CreatedBy:  7,
		AssignedTo: int64ptr(11),
		Status:     domain.LoadStatusAssigned,
		State:      state,
	}
}

func TestService_Advance_MidRoute(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	var logged []string
	tx := &fakeTx{
		getForUpdateFn: func(context.Context, int64) (*domain.Load, error) {
			return assignedLoad(domain.LoadStateEnRouteToPickUp), nil
		},
		updateStateFn: func(_ context.Context, _ int64, from, to domain.LoadState) (bool, error) {
			require.Equal(t, domain.LoadStateEnRouteToPickUp, from)
			require.Equal(t, domain.LoadStateArrivedToPickUp, to)
			return true, nil
		},
		appendLogFn: func(_ context.Context, _ int64, message string) error {
			logged = append(logged, message)
			return nil
		},
		markTruckOnRouteFn: func(context.Context, int64) error {
			t.Fatal("truck must not leave before cargo is on board")
			return nil
		},
	}

	svc := newService(NewMockloadRepository(ctrl), &stubRunner{tx: tx}, nil)

	got, err := svc.Advance(context.Background(), 11, 5)
	require.NoError(t, err)
	require.Equal(t, domain.LoadStatusAssigned, got.Status)
	require.Equal(t, domain.LoadStateArrivedToPickUp, got.State)
	require.Equal(t, []string{"Arrived to pick up"}, logged)
}

func TestService_Advance_DepartureMarksTruckOnRoute(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	truckMoved := false
	tx := &fakeTx{
		getForUpdateFn: func(context.Context, int64) (*domain.Load, error) {
			return assignedLoad(domain.LoadStateArrivedToPickUp), nil
		},
		updateStateFn: func(_ context.Context, _ int64, from, to domain.LoadState) (bool, error) {
			require.Equal(t, domain.LoadStateEnRouteToDelivery, to)
			return true, nil
		},
		markTruckOnRouteFn: func(_ context.Context, loadID int64) error {
			require.Equal(t, int64(5), loadID)
			truckMoved = true
			return nil
		},
	}

	svc := newService(NewMockloadRepository(ctrl), &stubRunner{tx: tx}, nil)

	got, err := svc.Advance(context.Background(), 11, 5)
	require.NoError(t, err)
	require.Equal(t, domain.LoadStateEnRouteToDelivery, got.State)
	require.True(t, truckMoved)
}

func TestService_Advance_FinalArrivalCompletes(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	var logged []string
	released := false
	tx := &fakeTx{
		getForUpdateFn: func(context.Context, int64) (*domain.Load, error) {
			return assignedLoad(domain.LoadStateEnRouteToDelivery), nil
		},
		completeFn: func(_ context.Context, loadID int64, from domain.LoadState) (bool, error) {
			require.Equal(t, int64(5), loadID)
			require.Equal(t, domain.LoadStateEnRouteToDelivery, from)
			return true, nil
		},
		releaseTruckFn: func(_ context.Context, loadID int64) error {
			require.Equal(t, int64(5), loadID)
			released = true
			return nil
		},
		appendLogFn: func(_ context.Context, _ int64, message string) error {
			logged = append(logged, message)
			return nil
		},
	}

	svc := newService(NewMockloadRepository(ctrl), &stubRunner{tx: tx}, nil)

	got, err := svc.Advance(context.Background(), 11, 5)
	require.NoError(t, err)
	require.Equal(t, domain.LoadStatusDelivered, got.Status)
	require.Equal(t, domain.LoadStateNone, got.State)
	require.True(t, released)
	require.Equal(t, []string{"Load delivered"}, logged)
}

func TestService_Advance_AfterDeliveryRejected(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	delivered := &domain.Load{
		ID: 5, CreatedBy: 7, AssignedTo: int64ptr(11),
		Status: domain.LoadStatusDelivered, State: domain.LoadStateNone,
	}
	tx := &fakeTx{
		getForUpdateFn: func(context.Context, int64) (*domain.Load, error) { return delivered, nil },
	}

	svc := newService(NewMockloadRepository(ctrl), &stubRunner{tx: tx}, nil)

	_, err := svc.Advance(context.Background(), 11, 5)
	require.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestService_Advance_WrongDriver(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	tx := &fakeTx{
		getForUpdateFn: func(context.Context, int64) (*domain.Load, error) {
			return assignedLoad(domain.LoadStateEnRouteToPickUp), nil
		},
	}
	svc := newService(NewMockloadRepository(ctrl), &stubRunner{tx: tx}, nil)

	_, err := svc.Advance(context.Background(), 99, 5)
	require.ErrorIs(t, err, apperr.ErrNotAuthorized)
}

func TestService_Advance_TxError(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	txErr := errors.New("boom")
	svc := newService(NewMockloadRepository(ctrl), &stubRunner{txErr: txErr}, nil)

	_, err := svc.Advance(context.Background(), 11, 5)
	require.ErrorIs(t, err, txErr)
}

func TestService_ShippingLog(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	stored := &domain.Load{ID: 5, CreatedBy: 7, Status: domain.LoadStatusDelivered, AssignedTo: int64ptr(11)}
	entries := []domain.LogEntry{
		{Message: "Load posted", Time: time.Now().Add(-time.Hour)},
		{Message: "Assigned to driver 11", Time: time.Now().Add(-50 * time.Minute)},
		{Message: "Arrived to pick up", Time: time.Now().Add(-40 * time.Minute)},
		{Message: "En route to delivery", Time: time.Now().Add(-30 * time.Minute)},
		{Message: "Load delivered", Time: time.Now()},
	}

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), int64(5)).Return(stored, nil)
	repo.EXPECT().Logs(gomock.Any(), int64(5)).Return(entries, nil)

	svc := newService(repo, noopRunner{}, nil)

	got, err := svc.ShippingLog(context.Background(), 7, domain.RoleShipper, 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	require.Equal(t, "Load posted", got[0].Message)
	require.Equal(t, "Load delivered", got[4].Message)
}

func TestService_ShippingLog_StrangerRejected(t *testing.T) {
	t.Parallel()
	ctrl := newCtrl(t)

	stored := &domain.Load{ID: 5, CreatedBy: 7, AssignedTo: int64ptr(11)}

	repo := NewMockloadRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), int64(5)).Return(stored, nil)

	svc := newService(repo, noopRunner{}, nil)

	_, err := svc.ShippingLog(context.Background(), 99, domain.RoleDriver, 5)
	require.ErrorIs(t, err, apperr.ErrNotAuthorized)
}
