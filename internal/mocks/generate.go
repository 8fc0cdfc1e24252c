// Package mocks provides mock implementations for testing the admin API services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// repository and gateway interfaces in internal/ports. The mocks are generated
// using go:generate directives and provide a fluent API for setting up test
// expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockBusinessRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(business, nil)
package mocks

// Generate mock for BusinessRepository interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=business_repository_mock.go github.com/tillflow/admin-api/internal/ports BusinessRepository

// Generate mock for TokenRepository interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_repository_mock.go github.com/tillflow/admin-api/internal/ports TokenRepository

// Generate mock for NotificationRepository interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=notification_repository_mock.go github.com/tillflow/admin-api/internal/ports NotificationRepository

// Generate mock for FeedbackRepository interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=feedback_repository_mock.go github.com/tillflow/admin-api/internal/ports FeedbackRepository

// Generate mock for CurrencyRepository interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=currency_repository_mock.go github.com/tillflow/admin-api/internal/ports CurrencyRepository

// Generate mock for DirectoryGateway interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=directory_gateway_mock.go github.com/tillflow/admin-api/internal/ports DirectoryGateway

// Generate mock for ProfileGateway interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=profile_gateway_mock.go github.com/tillflow/admin-api/internal/ports ProfileGateway
