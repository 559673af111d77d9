package util

// InSlice checks if an element is in a slice
// InSlice 检查元素是否在切片中
func InSlice[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// ArrayUnique removes duplicates keeping the first occurrence order
// ArrayUnique 去重并保持首次出现的顺序
func ArrayUnique[T comparable](arr []T) []T {
	if arr == nil {
		return nil
	}
	seen := make(map[T]struct{}, len(arr))
	result := make([]T, 0, len(arr))
	for _, v := range arr {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
