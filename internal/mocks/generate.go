package mocks

//go:generate mockery --name ReportStore --srcpkg github.com/aevon-lab/footprint/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name PermissionStore --srcpkg github.com/aevon-lab/footprint/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name UsageProvider --srcpkg github.com/aevon-lab/footprint/internal/host --output ./host --outpkg hostmocks --with-expecter
//go:generate mockery --name Authorizer --srcpkg github.com/aevon-lab/footprint/internal/host --output ./host --outpkg hostmocks --with-expecter
//go:generate mockery --name Navigator --srcpkg github.com/aevon-lab/footprint/internal/host --output ./host --outpkg hostmocks --with-expecter
