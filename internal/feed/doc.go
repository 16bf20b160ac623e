// Package feed consumes live cell observations from a Kafka topic and hands
// them to the classifier in batches. Messages carry one JSON observation
// each, in the same shape as the file importers accept. A batch is delivered
// when it reaches the configured size or when the flush interval elapses,
// whichever comes first, so a slow feed still produces timely results.
package feed
