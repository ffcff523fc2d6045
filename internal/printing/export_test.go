package printing

// Test seams for exercising platform selection without changing runtime.GOOS.
var (
	NewGatewayFor  = newGatewayFor
	NewResolverFor = newResolverFor
)
