package cli

// Export internal functions for testing.

// RunGenerate exports runGenerate for testing.
var RunGenerate = runGenerate

// ParseGenerateOptions exports parseGenerateOptions for testing.
var ParseGenerateOptions = parseGenerateOptions

// GenerateOptions exports generateOptions for testing.
type GenerateOptions = generateOptions

// RunShare exports runShare for testing.
var RunShare = runShare

// RunServe exports runServe for testing.
var RunServe = runServe

// RunTemplates exports runTemplates for testing.
var RunTemplates = runTemplates

// RunConfigSet exports runConfigSet for testing.
var RunConfigSet = runConfigSet

// RunConfigGet exports runConfigGet for testing.
var RunConfigGet = runConfigGet

// RunConfigList exports runConfigList for testing.
var RunConfigList = runConfigList

// DeriveSummaryName exports deriveSummaryName for testing.
var DeriveSummaryName = deriveSummaryName

// WriteFileAtomic exports writeFileAtomic for testing.
var WriteFileAtomic = writeFileAtomic

// ParseRecipients exports parseRecipients for testing.
var ParseRecipients = parseRecipients
