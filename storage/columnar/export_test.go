package columnar

// BuildCount reports how many descriptors c has constructed
func BuildCount(c *SideInfoCache) int64 {
	return c.builds.Load()
}
