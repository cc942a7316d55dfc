package core

// Partition divides files into contiguous groups for parallel readers.
//
// advice is the requested group count. When it is out of range (<= 0 or
// larger than len(files)) every file gets its own group. Otherwise there are
// exactly advice groups of len(files)/advice files each and the last group
// absorbs the remainder, so 10 files with advice 3 yield sizes 3, 3, 4.
// Each group is a fresh slice.
func Partition(files []string, advice int) [][]string {
	total := len(files)
	if total == 0 {
		return nil
	}
	if advice <= 0 || advice > total {
		advice = total
	}
	chunk := total / advice

	groups := make([][]string, 0, advice)
	for i := range advice {
		begin := i * chunk
		end := begin + chunk
		if i == advice-1 {
			end = total
		}
		g := make([]string, end-begin)
		copy(g, files[begin:end])
		groups = append(groups, g)
	}

	return groups
}
