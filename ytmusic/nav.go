package ytmusic

// The browse API nests its payloads a dozen renderers deep; these
// helpers walk such structures without a typed model, yielding
// zero values on any mismatch along the way.

func dig(value interface{}, path ...interface{}) interface{} {
	for _, step := range path {
		switch key := step.(type) {
		case string:
			object, ok := value.(map[string]interface{})
			if !ok {
				return nil
			}
			value = object[key]
		case int:
			list, ok := value.([]interface{})
			if !ok || key < 0 || key >= len(list) {
				return nil
			}
			value = list[key]
		default:
			return nil
		}
	}
	return value
}

func digString(value interface{}, path ...interface{}) string {
	text, _ := dig(value, path...).(string)
	return text
}

func digList(value interface{}, path ...interface{}) []interface{} {
	list, _ := dig(value, path...).([]interface{})
	return list
}

// runsText joins the text fragments of a "runs" list.
func runsText(value interface{}, path ...interface{}) string {
	var text string
	for _, run := range digList(value, append(path, "runs")...) {
		text += digString(run, "text")
	}
	return text
}

// runText returns the text of the i-th run only.
func runText(value interface{}, index int, path ...interface{}) string {
	return digString(value, append(path, "runs", index, "text")...)
}
