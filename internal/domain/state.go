package domain

// ArticleState tracks one article URL through a crawl run.
type ArticleState string

// Article states. Failed, Cancelled, Duplicate and Persisted end an article's run.
const (
	ArticlePending   ArticleState = "pending"
	ArticleFetched   ArticleState = "fetched"
	ArticleExtracted ArticleState = "extracted"
	ArticlePersisted ArticleState = "persisted"
	ArticleFailed    ArticleState = "failed"
	ArticleCancelled ArticleState = "cancelled"
	ArticleDuplicate ArticleState = "duplicate"
)
