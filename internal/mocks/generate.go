package mocks

//go:generate mockery --name ActivityStore --srcpkg github.com/playground-analytics/aggview/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name AggregateReader --srcpkg github.com/playground-analytics/aggview/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
