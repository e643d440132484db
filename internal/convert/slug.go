package convert

// slugPrefix marks groups and libraries created by this tool, and keeps
// their developer-names out of the way of hand-created ones.
const slugPrefix = "doc2file_"

// LibrarySlug returns the developer-name shared by the access group and
// library provisioned for a folder. It is a pure function of the folder
// developer-name, so every stage resolves the same pair independently.
func LibrarySlug(folderDeveloperName string) string {
	return slugPrefix + folderDeveloperName
}
