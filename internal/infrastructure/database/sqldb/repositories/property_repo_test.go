package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/estatehub/propevd/internal/domain/property"
	"github.com/estatehub/propevd/internal/infrastructure/monitoring/logging"
	"github.com/estatehub/propevd/pkg/errors"
)

type PropertyRepoTestSuite struct {
	suite.Suite
	ctx  context.Context
	repo property.Repository
}

func (s *PropertyRepoTestSuite) SetupTest() {
	conn := newTestConn(s.T())
	s.ctx = context.Background()
	s.repo = NewPropertyRepo(conn, logging.NewNopLogger())
}

func (s *PropertyRepoTestSuite) newProperty() *property.Property {
	return &property.Property{Area: 165.00, Price: 150000.00, Address: "Leluchov", Type: property.Hut}
}

func (s *PropertyRepoTestSuite) TestCreateAssignsIdentifier() {
	p := s.newProperty()
	s.Require().NoError(s.repo.Create(s.ctx, p))
	s.Require().NotNil(p.ID)

	stored, err := s.repo.GetByID(s.ctx, *p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal("Leluchov", stored.Address)
	s.Equal(property.Hut, stored.Type)
	s.Equal(165.00, stored.Area)
	s.Equal(150000.00, stored.Price)
}

func (s *PropertyRepoTestSuite) TestCreateRejectsInvalidEntity() {
	p := s.newProperty()
	p.Price = 0

	err := s.repo.Create(s.ctx, p)
	s.Require().Error(err)
	s.True(errors.IsInvalidEntity(err))
	s.Nil(p.ID)
}

func (s *PropertyRepoTestSuite) TestCreateRejectsAlreadyStored() {
	p := s.newProperty()
	p.ID = ptr(3)

	err := s.repo.Create(s.ctx, p)
	s.Require().Error(err)
	s.True(errors.IsInvalidEntity(err))
}

func (s *PropertyRepoTestSuite) TestUpdatePersistsChanges() {
	p := s.newProperty()
	s.Require().NoError(s.repo.Create(s.ctx, p))

	p.Price = 155000
	p.Type = property.FamilyHouse
	s.Require().NoError(s.repo.Update(s.ctx, p))

	stored, err := s.repo.GetByID(s.ctx, *p.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Equal(155000.00, stored.Price)
	s.Equal(property.FamilyHouse, stored.Type)
}

func (s *PropertyRepoTestSuite) TestUpdateMissingRow() {
	p := s.newProperty()
	p.ID = ptr(42)

	err := s.repo.Update(s.ctx, p)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *PropertyRepoTestSuite) TestDeleteRemovesRow() {
	p := s.newProperty()
	s.Require().NoError(s.repo.Create(s.ctx, p))

	s.Require().NoError(s.repo.Delete(s.ctx, p))

	stored, err := s.repo.GetByID(s.ctx, *p.ID)
	s.Require().NoError(err)
	s.Nil(stored)
}

func (s *PropertyRepoTestSuite) TestDeleteUnsavedEntity() {
	err := s.repo.Delete(s.ctx, s.newProperty())
	s.Require().Error(err)
	s.True(errors.IsInvalidEntity(err))
}

func (s *PropertyRepoTestSuite) TestGetAll() {
	hut := s.newProperty()
	flat := &property.Property{Area: 52, Price: 89000, Address: "Presov", Type: property.TwoRoomFlat}
	s.Require().NoError(s.repo.Create(s.ctx, hut))
	s.Require().NoError(s.repo.Create(s.ctx, flat))

	all, err := s.repo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.True(all[0].Equal(hut))
	s.True(all[1].Equal(flat))
}

func (s *PropertyRepoTestSuite) TestFindByAddress() {
	hut := s.newProperty()
	flat := &property.Property{Area: 52, Price: 89000, Address: "Presov", Type: property.TwoRoomFlat}
	s.Require().NoError(s.repo.Create(s.ctx, hut))
	s.Require().NoError(s.repo.Create(s.ctx, flat))

	found, err := s.repo.FindByAddress(s.ctx, "leluchov")
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.True(found[0].Equal(hut))

	found, err = s.repo.FindByAddress(s.ctx, "Kosice")
	s.Require().NoError(err)
	s.Empty(found)
}

// Matches land 2000 on either side of the asked price, boundaries included.
func (s *PropertyRepoTestSuite) TestFindByPriceBand() {
	cheap := &property.Property{Area: 40, Price: 148000, Address: "Bardejov", Type: property.OneRoomFlat}
	exact := s.newProperty()
	expensive := &property.Property{Area: 200, Price: 152000, Address: "Kosice", Type: property.FamilyHouse}
	outside := &property.Property{Area: 300, Price: 152000.01, Address: "Poprad", Type: property.FamilyHouse}
	for _, p := range []*property.Property{cheap, exact, expensive, outside} {
		s.Require().NoError(s.repo.Create(s.ctx, p))
	}

	found, err := s.repo.FindByPrice(s.ctx, 150000)
	s.Require().NoError(err)
	s.Require().Len(found, 3)
	s.True(found[0].Equal(cheap))
	s.True(found[1].Equal(exact))
	s.True(found[2].Equal(expensive))
}

func (s *PropertyRepoTestSuite) TestFindByPriceRejectsNonPositive() {
	_, err := s.repo.FindByPrice(s.ctx, 0)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.FindByPrice(s.ctx, -500)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *PropertyRepoTestSuite) TestGetByIDAbsent() {
	stored, err := s.repo.GetByID(s.ctx, 12345)
	s.Require().NoError(err)
	s.Nil(stored)
}

func TestPropertyRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PropertyRepoTestSuite))
}
