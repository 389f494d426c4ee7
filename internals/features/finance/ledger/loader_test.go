package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"schoolku_backend/internals/databases/scope"
	"schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/testutil"
)

type LoaderSuite struct {
	suite.Suite
	db  *gorm.DB
	ten *testutil.Tenant
	sc  *scope.Tenant
	ac  testutil.Academic

	paid, fresh, idle uuid.UUID // student id
	paidSS, idleSS    uuid.UUID
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderSuite))
}

func (s *LoaderSuite) SetupTest() {
	t := s.T()
	s.db = testutil.NewDB(t)
	s.ten = testutil.NewTenant(t, s.db, "LDG")
	s.sc = s.ten.Scope(s.db)
	s.ac = s.ten.Academic(t, s.db, "Grade 5")

	s.paid, s.paidSS = s.ten.Student(t, s.db, s.ac, "Ayu")
	s.fresh, _ = s.ten.Student(t, s.db, s.ac, "Budi")
	s.idle, s.idleSS = s.ten.Student(t, s.db, s.ac, "Citra")

	ft := &model.FeeTypeModel{FeeTypeName: "Tuition", FeeTypeCode: "TUI"}
	s.Require().NoError(s.sc.Create(ft))
	fg := &model.FeeGroupModel{FeeGroupName: "Term 1"}
	s.Require().NoError(s.sc.Create(fg))
	s.Require().NoError(s.sc.Create(&model.FeeGroupTypeModel{
		FeeGroupTypeFeeGroupID:  fg.FeeGroupID,
		FeeGroupTypeFeeTypeID:   ft.FeeTypeID,
		FeeGroupTypeAmount:      d("5000"),
		FeeGroupTypeDueDate:     day("2026-09-01"),
		FeeGroupTypeFineType:    model.FinePercentage,
		FeeGroupTypeFinePercent: d("10"),
	}))
	fm := &model.FeesMasterModel{
		FeesMasterSessionID:  s.ac.SessionID,
		FeesMasterFeeGroupID: fg.FeeGroupID,
		FeesMasterClassID:    s.ac.ClassID,
	}
	s.Require().NoError(s.sc.Create(fm))

	active := &model.StudentFeesMasterModel{
		StudentFeesMasterFeesMasterID:     fm.FeesMasterID,
		StudentFeesMasterStudentSessionID: s.paidSS,
		StudentFeesMasterIsActive:         true,
	}
	s.Require().NoError(s.sc.Create(active))
	inactive := &model.StudentFeesMasterModel{
		StudentFeesMasterFeesMasterID:     fm.FeesMasterID,
		StudentFeesMasterStudentSessionID: s.idleSS,
	}
	s.Require().NoError(s.sc.Create(inactive))
	// default:true di kolom; matikan eksplisit
	s.Require().NoError(s.sc.Updates(&model.StudentFeesMasterModel{}, inactive.StudentFeesMasterID,
		map[string]any{"student_fees_master_is_active": false}))

	s.Require().NoError(s.sc.Create(&model.FeePaymentModel{
		FeePaymentStudentFeesMasterID: active.StudentFeesMasterID,
		FeePaymentAmount:              d("2000"),
		FeePaymentDiscount:            d("150"),
		FeePaymentFine:                d("0"),
		FeePaymentMode:                "cash",
		FeePaymentPaidAt:              now.Add(-24 * time.Hour),
		FeePaymentCollectedBy:         s.ten.Admin.UserID,
	}))
}

func (s *LoaderSuite) byStudent(rows []StudentLedger) map[uuid.UUID]StudentLedger {
	out := make(map[uuid.UUID]StudentLedger, len(rows))
	for _, r := range rows {
		out[r.StudentID] = r
	}
	return out
}

func (s *LoaderSuite) TestAllStudentsListed() {
	rows, err := Load(s.sc, Filter{}, now)
	s.Require().NoError(err)
	s.Len(rows, 3)

	got := s.byStudent(rows)
	ayu := got[s.paid]
	s.Require().Len(ayu.Sessions, 1)
	s.Equal("Grade 5", ayu.Sessions[0].ClassName)
	s.True(d("3000").Equal(ayu.Summary.TotalDue))
	s.True(d("500").Equal(ayu.Summary.TotalFine))
	s.True(d("3500").Equal(ayu.Summary.GrandTotal))
	s.True(d("150").Equal(ayu.Summary.TotalDiscount))

	s.True(got[s.fresh].Summary.GrandTotal.IsZero())
	s.True(got[s.idle].Summary.TotalAssigned.IsZero(), "inactive assignment is ignored")
}

func (s *LoaderSuite) TestOnlyDueAndStudentFilter() {
	rows, err := Load(s.sc, Filter{OnlyDue: true}, now)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(s.paid, rows[0].StudentID)

	rows, err = Load(s.sc, Filter{StudentID: &s.fresh}, now)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("Budi", rows[0].FirstName)
}

func (s *LoaderSuite) TestClassFilterAndOtherTenant() {
	other := s.ten.Academic(s.T(), s.db, "Grade 6")
	rows, err := Load(s.sc, Filter{ClassID: &other.ClassID}, now)
	s.Require().NoError(err)
	s.Empty(rows)

	foreign := testutil.NewTenant(s.T(), s.db, "LDX")
	rows, err = Load(foreign.Scope(s.db), Filter{}, now)
	s.Require().NoError(err)
	s.Empty(rows)
}
