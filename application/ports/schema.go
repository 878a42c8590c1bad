package ports

// Secondary index names, fixed across environments
const (
	IndexByEmail = "byEmail"
	IndexByShelf = "byShelf"
	IndexByUser  = "byUser"
	IndexByBook  = "byBook"
)

// Tables holds the physical collection names for one environment
type Tables struct {
	Users         string
	Books         string
	UserBooks     string
	Reviews       string
	Friends       string
	Activity      string
	ReadingStats  string
	CustomShelves string
	BookLoans     string
}

// IndexSchema describes one secondary index over a collection
type IndexSchema struct {
	Name         string
	PartitionKey string
	SortKey      string
}

// TableSchema describes one collection: primary key shape, expiration
// attribute, and secondary indexes. Used for provisioning and by the
// in-memory store.
type TableSchema struct {
	Name         string
	PartitionKey string
	SortKey      string // empty for partition-key-only collections
	TTLAttribute string // empty when items never expire
	Indexes      []IndexSchema
}

// Schemas returns the full collection layout for the given table names
func Schemas(t Tables) []TableSchema {
	return []TableSchema{
		{
			Name:         t.Users,
			PartitionKey: "userId",
			Indexes: []IndexSchema{
				{Name: IndexByEmail, PartitionKey: "email"},
			},
		},
		{
			Name:         t.Books,
			PartitionKey: "isbn",
			TTLAttribute: "ttl",
		},
		{
			Name:         t.UserBooks,
			PartitionKey: "userId",
			SortKey:      "bookId",
			Indexes: []IndexSchema{
				{Name: IndexByShelf, PartitionKey: "userId", SortKey: "shelf"},
			},
		},
		{
			Name:         t.Reviews,
			PartitionKey: "bookId",
			SortKey:      "reviewId",
			Indexes: []IndexSchema{
				{Name: IndexByUser, PartitionKey: "userId", SortKey: "createdAt"},
			},
		},
		{
			Name:         t.Friends,
			PartitionKey: "userId",
			SortKey:      "friendId",
		},
		{
			Name:         t.Activity,
			PartitionKey: "userId",
			SortKey:      "timestamp",
			TTLAttribute: "ttl",
		},
		{
			Name:         t.ReadingStats,
			PartitionKey: "userId",
			SortKey:      "period",
		},
		{
			Name:         t.CustomShelves,
			PartitionKey: "userId",
			SortKey:      "shelfId",
		},
		{
			Name:         t.BookLoans,
			PartitionKey: "userId",
			SortKey:      "loanId",
			Indexes: []IndexSchema{
				{Name: IndexByBook, PartitionKey: "userId", SortKey: "bookId"},
			},
		},
	}
}
