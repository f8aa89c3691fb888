package database

type FetchStateRepository interface {
	GetFetchState(url string) (*FetchState, error)
	UpsertFetchState(state FetchState) error
	GetFetchStateCount() (int, error)
}

var _ FetchStateRepository = (*FetchStateRepo)(nil)
