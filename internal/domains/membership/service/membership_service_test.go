package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlibrary-backend/internal/domains/membership/model"
	"smartlibrary-backend/internal/shared/policy"
)

type fakeMemberRepo struct {
	members    map[uuid.UUID]*model.Member
	loans      map[uuid.UUID][]string // member id -> loan statuses
	lastFilter model.MemberFilter
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		members: make(map[uuid.UUID]*model.Member),
		loans:   make(map[uuid.UUID][]string),
	}
}

// activeLoanCount mirrors the repository's correlated subquery: only loans
// still in the Active state count, Overdue and Returned ones do not.
func (f *fakeMemberRepo) activeLoanCount(memberID uuid.UUID) int {
	count := 0
	for _, status := range f.loans[memberID] {
		if status == "Active" {
			count++
		}
	}
	return count
}

func (f *fakeMemberRepo) Create(_ context.Context, m *model.Member) (*model.Member, error) {
	for _, existing := range f.members {
		if existing.MemberCode == m.MemberCode {
			return nil, model.ErrDuplicateMemberCode
		}
		if existing.Email == m.Email {
			return nil, model.ErrDuplicateMemberEmail
		}
	}

	m.ID = uuid.New()
	f.members[m.ID] = m
	return m, nil
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, model.ErrMemberNotFound
	}

	out := *m
	out.ActiveLoanCount = f.activeLoanCount(id)
	return &out, nil
}

func (f *fakeMemberRepo) List(_ context.Context, filter model.MemberFilter) ([]model.Member, int64, error) {
	f.lastFilter = filter

	var members []model.Member
	for _, m := range f.members {
		out := *m
		out.ActiveLoanCount = f.activeLoanCount(m.ID)
		members = append(members, out)
	}
	return members, int64(len(members)), nil
}

func librarianCtx() context.Context {
	return policy.WithActor(context.Background(), policy.Actor{
		UserID: uuid.New(),
		Name:   "alice",
		Role:   policy.RoleLibrarian,
	})
}

func memberCtx() context.Context {
	return policy.WithActor(context.Background(), policy.Actor{
		UserID: uuid.New(),
		Name:   "bob",
		Role:   policy.RoleMember,
	})
}

func TestAddMember(t *testing.T) {
	svc := NewMembershipService(newFakeMemberRepo())

	member, err := svc.AddMember(librarianCtx(), &model.CreateMemberRequest{
		Name:       "  Carol Danvers ",
		Email:      "Carol@Example.COM",
		MemberCode: "M-0001",
		Contact:    "555-0101",
	})
	require.NoError(t, err)

	assert.Equal(t, "Carol Danvers", member.Name)
	assert.Equal(t, "carol@example.com", member.Email)
	assert.NotEqual(t, uuid.Nil, member.ID)
}

func TestAddMemberDuplicateCode(t *testing.T) {
	svc := NewMembershipService(newFakeMemberRepo())

	_, err := svc.AddMember(librarianCtx(), &model.CreateMemberRequest{
		Name: "Carol", Email: "carol@example.com", MemberCode: "M-0001",
	})
	require.NoError(t, err)

	_, err = svc.AddMember(librarianCtx(), &model.CreateMemberRequest{
		Name: "Dan", Email: "dan@example.com", MemberCode: "M-0001",
	})
	assert.ErrorIs(t, err, model.ErrDuplicateMemberCode)
}

func TestAddMemberInvalidEmail(t *testing.T) {
	svc := NewMembershipService(newFakeMemberRepo())

	_, err := svc.AddMember(librarianCtx(), &model.CreateMemberRequest{
		Name: "Carol", Email: "not-an-email", MemberCode: "M-0001",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestAddMemberRequiresLibrarian(t *testing.T) {
	svc := NewMembershipService(newFakeMemberRepo())

	_, err := svc.AddMember(memberCtx(), &model.CreateMemberRequest{
		Name: "Carol", Email: "carol@example.com", MemberCode: "M-0001",
	})
	assert.ErrorIs(t, err, policy.ErrPermissionDenied)
}

func TestGetMemberNotFound(t *testing.T) {
	svc := NewMembershipService(newFakeMemberRepo())

	_, err := svc.GetMember(memberCtx(), uuid.New())
	assert.ErrorIs(t, err, model.ErrMemberNotFound)

	_, err = svc.GetMember(memberCtx(), uuid.Nil)
	assert.ErrorIs(t, err, model.ErrMemberNotFound)
}

func TestActiveLoanCountCountsOnlyActiveLoans(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewMembershipService(repo)

	carol, err := svc.AddMember(librarianCtx(), &model.CreateMemberRequest{
		Name: "Carol", Email: "carol@example.com", MemberCode: "M-0001",
	})
	require.NoError(t, err)
	repo.loans[carol.ID] = []string{"Active", "Overdue", "Returned"}

	dan, err := svc.AddMember(librarianCtx(), &model.CreateMemberRequest{
		Name: "Dan", Email: "dan@example.com", MemberCode: "M-0002",
	})
	require.NoError(t, err)
	repo.loans[dan.ID] = []string{"Overdue"}

	got, err := svc.GetMember(memberCtx(), carol.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ActiveLoanCount)

	// A member whose only loan has gone overdue shows zero active loans.
	got, err = svc.GetMember(memberCtx(), dan.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ActiveLoanCount)

	members, _, err := svc.ListMembers(memberCtx(), model.MemberFilter{})
	require.NoError(t, err)
	counts := make(map[string]int, len(members))
	for _, m := range members {
		counts[m.MemberCode] = m.ActiveLoanCount
	}
	assert.Equal(t, map[string]int{"M-0001": 1, "M-0002": 0}, counts)
}

func TestListMembersClampsPagination(t *testing.T) {
	repo := newFakeMemberRepo()
	svc := NewMembershipService(repo)

	_, _, err := svc.ListMembers(memberCtx(), model.MemberFilter{Limit: 999, Offset: -1})
	require.NoError(t, err)

	assert.Equal(t, 200, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)
}
