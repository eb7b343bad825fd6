// Package awsadp provides AWS adapters for the career copilot interfaces.
// This package implements TaskStore and PushNotifier using AWS services.
//
// S3TaskStore: implements TaskStore using AWS S3
// SQSPushNotifier: implements PushNotifier using AWS SQS
//
// These adapters are compatible with minio and ElasticMQ for local
// development, allowing seamless transition between local and AWS
// environments.
package awsadp
