package services_test

import (
	"context"
	"testing"

	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portssvc "github.com/vidtube/vidtube_backend/internal/core/ports/services"
	"github.com/vidtube/vidtube_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SubscriptionRepository ---
type MockSubscriptionRepository struct {
	mock.Mock
	GetChannelProfileFn func(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error)
}

func (m *MockSubscriptionRepository) GetChannelProfile(ctx context.Context, username string, viewerID string) (*domain.ChannelProfile, error) {
	if m.GetChannelProfileFn != nil {
		return m.GetChannelProfileFn(ctx, username, viewerID)
	}
	args := m.Called(ctx, username, viewerID)
	var profile *domain.ChannelProfile
	if args.Get(0) != nil {
		profile = args.Get(0).(*domain.ChannelProfile)
	}
	return profile, args.Error(1)
}

// --- Mock VideoRepository ---
type MockVideoRepository struct {
	mock.Mock
	FindWatchHistoryFn func(ctx context.Context, userID string) ([]domain.Video, error)
}

func (m *MockVideoRepository) FindWatchHistory(ctx context.Context, userID string) ([]domain.Video, error) {
	if m.FindWatchHistoryFn != nil {
		return m.FindWatchHistoryFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var videos []domain.Video
	if args.Get(0) != nil {
		videos = args.Get(0).([]domain.Video)
	}
	return videos, args.Error(1)
}

// --- Test Suite ---
type ChannelServiceTestSuite struct {
	suite.Suite
	mockSubRepo   *MockSubscriptionRepository
	mockVideoRepo *MockVideoRepository
	service       portssvc.ChannelSvcFacade
}

func (suite *ChannelServiceTestSuite) SetupTest() {
	suite.mockSubRepo = new(MockSubscriptionRepository)
	suite.mockVideoRepo = new(MockVideoRepository)
	suite.service = services.NewChannelService(suite.mockSubRepo, suite.mockVideoRepo)
}

func (suite *ChannelServiceTestSuite) TestGetChannelProfile_Success() {
	ctx := context.Background()
	viewerID := uuid.NewString()
	expected := &domain.ChannelProfile{
		FullName:                  "Channel Owner",
		Username:                  "channelowner",
		SubscribersCount:          2,
		ChannelsSubscribedToCount: 1,
		IsSubscribed:              true,
		AvatarURL:                 "https://cdn.example.com/av",
		Email:                     "owner@example.com",
	}

	suite.mockSubRepo.On("GetChannelProfile", ctx, "channelowner", viewerID).
		Return(expected, nil).Once()

	profile, err := suite.service.GetChannelProfile(ctx, "channelowner", viewerID)

	suite.Require().NoError(err)
	suite.Equal(expected, profile)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *ChannelServiceTestSuite) TestGetChannelProfile_BlankUsername() {
	profile, err := suite.service.GetChannelProfile(context.Background(), "   ", "viewer")

	suite.Require().Error(err)
	suite.Nil(profile)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(404, appErr.Code)
	suite.Equal("Username not found", appErr.Message)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "GetChannelProfile", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ChannelServiceTestSuite) TestGetChannelProfile_NotFound() {
	ctx := context.Background()

	suite.mockSubRepo.On("GetChannelProfile", ctx, "missing", "viewer").
		Return(nil, apperrors.ErrNotFound).Once()

	profile, err := suite.service.GetChannelProfile(ctx, "missing", "viewer")

	suite.Require().Error(err)
	suite.Nil(profile)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(404, appErr.Code)
	suite.Equal("Channel not found.", appErr.Message)
}

func (suite *ChannelServiceTestSuite) TestGetWatchHistory_PreservesStoredOrder() {
	ctx := context.Background()
	userID := uuid.NewString()
	history := []domain.Video{
		{VideoID: "v1", Title: "First", Owner: domain.VideoOwner{Username: "alice"}},
		{VideoID: "v2", Title: "Second", Owner: domain.VideoOwner{Username: "bob"}},
		{VideoID: "v3", Title: "Third", Owner: domain.VideoOwner{Username: "alice"}},
	}

	suite.mockVideoRepo.On("FindWatchHistory", ctx, userID).Return(history, nil).Once()

	videos, err := suite.service.GetWatchHistory(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().Len(videos, 3)
	suite.Equal("v1", videos[0].VideoID)
	suite.Equal("v2", videos[1].VideoID)
	suite.Equal("v3", videos[2].VideoID)
	suite.Equal("alice", videos[0].Owner.Username)
}

func (suite *ChannelServiceTestSuite) TestGetWatchHistory_InvalidUserID() {
	videos, err := suite.service.GetWatchHistory(context.Background(), "not-a-uuid")

	suite.Require().Error(err)
	suite.Nil(videos)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.Equal("Invalid user ID", appErr.Message)
	suite.mockVideoRepo.AssertNotCalled(suite.T(), "FindWatchHistory", mock.Anything, mock.Anything)
}

func (suite *ChannelServiceTestSuite) TestGetWatchHistory_EmptyHistory() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockVideoRepo.On("FindWatchHistory", ctx, userID).Return([]domain.Video{}, nil).Once()

	videos, err := suite.service.GetWatchHistory(ctx, userID)

	suite.Require().NoError(err)
	suite.Empty(videos)
}

func TestChannelServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChannelServiceTestSuite))
}
