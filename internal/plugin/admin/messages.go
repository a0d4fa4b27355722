package admin

import "fmt"

// Message keys. The texts are the English catalogue; a key without a text is shown as is.
const (
	loginErrorText            = "login.error.text"
	failedPermissionText      = "failed.permission.text"
	failedPermissionEditText  = "failed.permission.edit.text"
	failedPropertiesText      = "failed.edit.properties.permission.text"
	failedUsersPermissionText = "failed.authorization.permission.text"
	failedRetrieveEntryText   = "failed.retrieve.entry.text"
	failedDeleteEntryText     = "failed.delete.entry.text"
	failedAddEntryText        = "failed.add.entry.text"
	updatedEntryText          = "updated.blog.entry.text"
	deletedEntryText          = "deleted.blog.entry.text"
	addedEntryText            = "added.blog.entry.text"
	blankEntryText            = "blank.entry.text"
	destroyedEntryText        = "destroyed.entry.text"
	deletedResponsesText      = "deleted.responses.text"
	approvedResponsesText     = "approved.responses.text"
	deletedCategoryText       = "deleted.category.text"
	failedDeleteCategoryText  = "failed.deleted.category.text"
	failedLoadCategoryText    = "failed.load.category.text"
	noCategoryText            = "no.category.specified.text"
	categoryAddedText         = "category.add.success.text"
	categoryUpdatedText       = "category.update.success.text"
	categoryChangeFailedText  = "category.change.failed.text"
	updatedPropertiesText     = "updated.blog.properties.text"
	failedSavePropertiesText  = "failed.save.blog.properties.text"
	propertyHasValueText      = "blog.property.has.value.text"
	propertyNotFoundText      = "blog.property.not.found.text"
	missingParametersText     = "missing.parameters.text"
	passwordCheckFailedText   = "password.check.failed.text"
	userAddedText             = "successful.authorization.update.key"
	userDeletedText           = "successful.authorization.delete.key"
	userAddFailedText         = "unsuccessful.authorization.update.key"
	userDeleteFailedText      = "unsuccessful.authorization.delete.key"
	permissionSavedText       = "permissions.saved.text"
	permissionDeletedText     = "permission.deleted.text"
	permissionSaveFailedText  = "error.saving.permissions.text"
	noPermissionSpecifiedText = "no.permission.specified.text"
	cannotDeleteYourselfText  = "cannot.delete.yourself.text"
)

var messages = map[string]string{
	loginErrorText:            "Unable to log in with the username %s and the password provided.",
	failedPermissionText:      "You do not have permission to perform this action.",
	failedPermissionEditText:  "You do not have permission to edit entries.",
	failedPropertiesText:      "You do not have permission to edit the blog properties.",
	failedUsersPermissionText: "You do not have permission to edit users.",
	failedRetrieveEntryText:   "Unable to retrieve entry %s.",
	failedDeleteEntryText:     "Unable to delete entry %s.",
	failedAddEntryText:        "Unable to add the entry: %s",
	updatedEntryText:          "Updated entry %s.",
	deletedEntryText:          "Deleted entry %s.",
	addedEntryText:            "Added entry %s.",
	blankEntryText:            "An entry needs a title or a description.",
	destroyedEntryText:        "The entry was rejected: %s",
	deletedResponsesText:      "Deleted %d %s(s).",
	approvedResponsesText:     "Approved %d %s(s).",
	deletedCategoryText:       "Deleted category %s.",
	failedDeleteCategoryText:  "Unable to delete category %s.",
	failedLoadCategoryText:    "Unable to load category %s.",
	noCategoryText:            "No category name was specified.",
	categoryAddedText:         "Added category %s.",
	categoryUpdatedText:       "Updated category %s.",
	categoryChangeFailedText:  "Unable to save category %s.",
	updatedPropertiesText:     "Updated the blog properties.",
	failedSavePropertiesText:  "Unable to save the blog properties: %s",
	propertyHasValueText:      "Property %s has the value %s.",
	propertyNotFoundText:      "Property %s is not set.",
	missingParametersText:     "Required fields are missing.",
	passwordCheckFailedText:   "The passwords do not match.",
	userAddedText:             "Saved user %s.",
	userDeletedText:           "Deleted user %s.",
	userAddFailedText:         "Unable to save user %s: %s",
	userDeleteFailedText:      "Unable to delete user %s.",
	permissionSavedText:       "Granted %s to %s.",
	permissionDeletedText:     "Revoked %s from %s.",
	permissionSaveFailedText:  "Unable to change the permissions of %s.",
	noPermissionSpecifiedText: "No permission was specified.",
	cannotDeleteYourselfText:  "You cannot delete the account you are logged in with.",
}

func text(key string, args ...any) string {
	format, ok := messages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
